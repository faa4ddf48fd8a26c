// Command propdump encodes and decodes MQTT 5.0 property blocks.
//
// Decode a block from hex or a file:
//
//	propdump -hex 0f09636f6e74656e742f747970...
//	propdump -in connect-props.bin
//
// Build and encode a block from repeated -prop flags (the value syntax
// follows the property's type):
//
//	propdump -prop 0x11:3600 -prop 0x03:application/json -prop 0x26:trace-id=abc123
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/bromq-dev/mqttkit/pkg/property"
)

var (
	hexInput = flag.String("hex", "", "Property block as hex (length prefix included)")
	inFile   = flag.String("in", "", "Read the property block from a file")
	outFile  = flag.String("out", "", "Write the encoded block to a file (with -prop)")
	noColor  = flag.Bool("no-color", false, "Disable colorized output")

	props propSlice
)

// Custom flag type for accumulating properties
type propSlice []property.Property

func (p *propSlice) String() string {
	parts := make([]string, len(*p))
	for i, prop := range *p {
		parts[i] = prop.String()
	}
	return strings.Join(parts, ", ")
}

func (p *propSlice) Set(s string) error {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid property format: %s (expected code:value)", s)
	}

	code64, err := strconv.ParseUint(parts[0], 0, 8)
	if err != nil {
		return fmt.Errorf("invalid property code: %s", parts[0])
	}
	code := property.Code(code64)

	var prop property.Property
	switch code.Kind() {
	case property.KindString:
		prop, err = property.NewString(code, parts[1])
	case property.KindBinary:
		data, decErr := hex.DecodeString(parts[1])
		if decErr != nil {
			return fmt.Errorf("invalid hex value for %s: %v", code, decErr)
		}
		prop, err = property.NewBinary(code, data)
	case property.KindStringPair:
		kv := strings.SplitN(parts[1], "=", 2)
		if len(kv) != 2 {
			return fmt.Errorf("invalid pair format: %s (expected key=value)", parts[1])
		}
		prop, err = property.NewPair(code, kv[0], kv[1])
	default:
		value, parseErr := strconv.ParseInt(parts[1], 0, 64)
		if parseErr != nil {
			return fmt.Errorf("invalid integer value for %s: %v", code, parseErr)
		}
		prop, err = property.NewInt(code, value)
	}
	if err != nil {
		return err
	}

	*p = append(*p, prop)
	return nil
}

func init() {
	flag.Var(&props, "prop", "Property to add: code:value (can be repeated)")
}

func main() {
	flag.Parse()
	if *noColor {
		color.NoColor = true
	}

	switch {
	case len(props) > 0:
		encodeProps()
	case *hexInput != "" || *inFile != "":
		decodeProps()
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func encodeProps() {
	list := property.NewList(props...)

	buf := make([]byte, list.EncodedSize())
	if list.Encode(buf) == 0 {
		log.Fatal("Property block exceeds protocol limits")
	}

	if *outFile != "" {
		if err := os.WriteFile(*outFile, buf, 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", *outFile, err)
		}
		log.Printf("Wrote %d bytes to %s", len(buf), *outFile)
	} else {
		fmt.Println(hex.EncodeToString(buf))
	}
	printList(list)
}

func decodeProps() {
	var block []byte
	if *hexInput != "" {
		clean := strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\t' {
				return -1
			}
			return r
		}, *hexInput)
		var err error
		block, err = hex.DecodeString(clean)
		if err != nil {
			log.Fatalf("Invalid hex input: %v", err)
		}
	} else {
		var err error
		block, err = os.ReadFile(*inFile)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *inFile, err)
		}
	}

	list, n, err := property.DecodeList(block)
	if err != nil {
		log.Fatalf("Malformed property block: %v", err)
	}
	if n < len(block) {
		log.Printf("Warning: %d trailing bytes after the property block", len(block)-n)
	}
	printList(list)
}

func printList(list property.List) {
	fmt.Printf("%d properties, %d bytes encoded\n", list.Len(), list.EncodedSize())

	codeColor := color.New(color.FgCyan, color.Bold)
	i := 0
	for p := range list.All() {
		name := p.Code().String()
		value := strings.TrimPrefix(p.String(), name+": ")
		fmt.Printf("  [%d] 0x%02X %s: %s\n", i, byte(p.Code()), codeColor.Sprint(name), value)
		i++
	}
}
