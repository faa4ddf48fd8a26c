// Package property implements the MQTT 5.0 property value model: single
// tagged values identified by a property code, and ordered property lists
// with their wire encoding. Properties and lists are plain value types
// that own their storage; copies never alias the source.
package property

// Code represents an MQTT 5.0 property identifier.
// MQTT 5.0 Section 2.2.2.2
type Code byte

// Property identifiers as defined in MQTT 5.0 Table 2-4
const (
	CodePayloadFormat        Code = 0x01 // Byte - PUBLISH, Will Properties
	CodeMessageExpiry        Code = 0x02 // Four Byte Integer - PUBLISH, Will Properties
	CodeContentType          Code = 0x03 // UTF-8 String - PUBLISH, Will Properties
	CodeResponseTopic        Code = 0x08 // UTF-8 String - PUBLISH, Will Properties
	CodeCorrelationData      Code = 0x09 // Binary Data - PUBLISH, Will Properties
	CodeSubscriptionID       Code = 0x0B // Variable Byte Integer - PUBLISH, SUBSCRIBE
	CodeSessionExpiry        Code = 0x11 // Four Byte Integer - CONNECT, CONNACK, DISCONNECT
	CodeAssignedClientID     Code = 0x12 // UTF-8 String - CONNACK
	CodeServerKeepAlive      Code = 0x13 // Two Byte Integer - CONNACK
	CodeAuthMethod           Code = 0x15 // UTF-8 String - CONNECT, CONNACK, AUTH
	CodeAuthData             Code = 0x16 // Binary Data - CONNECT, CONNACK, AUTH
	CodeRequestProblemInfo   Code = 0x17 // Byte - CONNECT
	CodeWillDelayInterval    Code = 0x18 // Four Byte Integer - Will Properties
	CodeRequestResponseInfo  Code = 0x19 // Byte - CONNECT
	CodeResponseInfo         Code = 0x1A // UTF-8 String - CONNACK
	CodeServerReference      Code = 0x1C // UTF-8 String - CONNACK, DISCONNECT
	CodeReasonString         Code = 0x1F // UTF-8 String - All except CONNECT
	CodeReceiveMax           Code = 0x21 // Two Byte Integer - CONNECT, CONNACK
	CodeTopicAliasMax        Code = 0x22 // Two Byte Integer - CONNECT, CONNACK
	CodeTopicAlias           Code = 0x23 // Two Byte Integer - PUBLISH
	CodeMaxQoS               Code = 0x24 // Byte - CONNACK
	CodeRetainAvailable      Code = 0x25 // Byte - CONNACK
	CodeUserProperty         Code = 0x26 // UTF-8 String Pair - All packets
	CodeMaxPacketSize        Code = 0x27 // Four Byte Integer - CONNECT, CONNACK
	CodeWildcardSubAvailable Code = 0x28 // Byte - CONNACK
	CodeSubIDAvailable       Code = 0x29 // Byte - CONNACK
	CodeSharedSubAvailable   Code = 0x2A // Byte - CONNACK
)

// Kind represents the wire data type of a property value.
type Kind byte

const (
	KindByte        Kind = iota // Single byte
	KindTwoByteInt              // Two byte integer, big-endian
	KindFourByteInt             // Four byte integer, big-endian
	KindVarInt                  // Variable byte integer
	KindString                  // UTF-8 encoded string
	KindBinary                  // Binary data
	KindStringPair              // UTF-8 string pair
)

// Kind returns the wire data type for a property code.
// The mapping is fixed by the protocol; unknown codes report KindByte,
// but are rejected by every constructor and by the decoder.
func (c Code) Kind() Kind {
	switch c {
	case CodePayloadFormat, CodeRequestProblemInfo, CodeRequestResponseInfo,
		CodeMaxQoS, CodeRetainAvailable, CodeWildcardSubAvailable,
		CodeSubIDAvailable, CodeSharedSubAvailable:
		return KindByte

	case CodeServerKeepAlive, CodeReceiveMax, CodeTopicAliasMax, CodeTopicAlias:
		return KindTwoByteInt

	case CodeMessageExpiry, CodeSessionExpiry, CodeWillDelayInterval, CodeMaxPacketSize:
		return KindFourByteInt

	case CodeSubscriptionID:
		return KindVarInt

	case CodeContentType, CodeResponseTopic, CodeAssignedClientID, CodeAuthMethod,
		CodeResponseInfo, CodeServerReference, CodeReasonString:
		return KindString

	case CodeCorrelationData, CodeAuthData:
		return KindBinary

	case CodeUserProperty:
		return KindStringPair

	default:
		return KindByte
	}
}

// Valid returns true if the code is part of the MQTT 5.0 property set.
func (c Code) Valid() bool {
	switch c {
	case CodePayloadFormat, CodeMessageExpiry, CodeContentType,
		CodeResponseTopic, CodeCorrelationData, CodeSubscriptionID,
		CodeSessionExpiry, CodeAssignedClientID, CodeServerKeepAlive,
		CodeAuthMethod, CodeAuthData, CodeRequestProblemInfo,
		CodeWillDelayInterval, CodeRequestResponseInfo, CodeResponseInfo,
		CodeServerReference, CodeReasonString, CodeReceiveMax,
		CodeTopicAliasMax, CodeTopicAlias, CodeMaxQoS, CodeRetainAvailable,
		CodeUserProperty, CodeMaxPacketSize, CodeWildcardSubAvailable,
		CodeSubIDAvailable, CodeSharedSubAvailable:
		return true
	default:
		return false
	}
}

// String returns the name of the property.
func (c Code) String() string {
	switch c {
	case CodePayloadFormat:
		return "Payload Format Indicator"
	case CodeMessageExpiry:
		return "Message Expiry Interval"
	case CodeContentType:
		return "Content Type"
	case CodeResponseTopic:
		return "Response Topic"
	case CodeCorrelationData:
		return "Correlation Data"
	case CodeSubscriptionID:
		return "Subscription Identifier"
	case CodeSessionExpiry:
		return "Session Expiry Interval"
	case CodeAssignedClientID:
		return "Assigned Client Identifier"
	case CodeServerKeepAlive:
		return "Server Keep Alive"
	case CodeAuthMethod:
		return "Authentication Method"
	case CodeAuthData:
		return "Authentication Data"
	case CodeRequestProblemInfo:
		return "Request Problem Information"
	case CodeWillDelayInterval:
		return "Will Delay Interval"
	case CodeRequestResponseInfo:
		return "Request Response Information"
	case CodeResponseInfo:
		return "Response Information"
	case CodeServerReference:
		return "Server Reference"
	case CodeReasonString:
		return "Reason String"
	case CodeReceiveMax:
		return "Receive Maximum"
	case CodeTopicAliasMax:
		return "Topic Alias Maximum"
	case CodeTopicAlias:
		return "Topic Alias"
	case CodeMaxQoS:
		return "Maximum QoS"
	case CodeRetainAvailable:
		return "Retain Available"
	case CodeUserProperty:
		return "User Property"
	case CodeMaxPacketSize:
		return "Maximum Packet Size"
	case CodeWildcardSubAvailable:
		return "Wildcard Subscription Available"
	case CodeSubIDAvailable:
		return "Subscription Identifier Available"
	case CodeSharedSubAvailable:
		return "Shared Subscription Available"
	default:
		return "Unknown Property"
	}
}

// String returns the name of the wire data type.
func (k Kind) String() string {
	switch k {
	case KindByte:
		return "Byte"
	case KindTwoByteInt:
		return "Two Byte Integer"
	case KindFourByteInt:
		return "Four Byte Integer"
	case KindVarInt:
		return "Variable Byte Integer"
	case KindString:
		return "UTF-8 String"
	case KindBinary:
		return "Binary Data"
	case KindStringPair:
		return "UTF-8 String Pair"
	default:
		return "unknown"
	}
}
