package enums

import "fmt"

// MessageType distinguishes user-authored messages from system notices.
type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeSystem MessageType = "system"
)

var validMessageTypes = []MessageType{
	MessageTypeText,
	MessageTypeSystem,
}

func (t MessageType) String() string {
	return string(t)
}

func (t MessageType) IsValid() bool {
	for _, candidate := range validMessageTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

func ParseMessageType(value string) (MessageType, error) {
	for _, candidate := range validMessageTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid message type %q", value)
}
