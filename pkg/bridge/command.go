package bridge

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/protobuf/proto"
	structpb "github.com/golang/protobuf/ptypes/struct"

	"github.com/robotalks/hidlink/pkg/comm"
	"github.com/robotalks/hidlink/pkg/keys"
)

// ErrBadCommand indicates a command payload which can't be converted
// to a packet.
var ErrBadCommand = errors.New("bad command")

// Command types accepted in the "type" field.
const (
	CommandKey        = "key"
	CommandMouseMove  = "mouse_move"
	CommandMouseClick = "mouse_click"
	CommandRaw        = "raw"
)

func badCommand(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrBadCommand, fmt.Sprintf(format, args...))
}

// DecodeCommand decodes a protobuf encoded google.protobuf.Struct payload
// into a packet.
func DecodeCommand(payload []byte) (comm.Packet, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(payload, &s); err != nil {
		return comm.Packet{}, badCommand("%v", err)
	}
	return PacketFromStruct(&s)
}

// PacketFromStruct converts a command to a packet:
//
//	{"type": "key", "key": "n", "modifier": "LEFT_CTRL"}
//	{"type": "mouse_move", "dx": -127, "dy": 80, "scale": 2}
//	{"type": "mouse_click", "buttons": ["LEFT"], "count": 2}
//	{"type": "raw", "cmd": 16, "data": [110, 128, 0]}
//
// Keys, buttons and command types are accepted by name or by number.
func PacketFromStruct(s *structpb.Struct) (comm.Packet, error) {
	fields := s.GetFields()
	typ, ok := fields["type"].GetKind().(*structpb.Value_StringValue)
	if !ok {
		return comm.Packet{}, badCommand("missing type")
	}
	switch typ.StringValue {
	case CommandKey:
		key, err := keyField(fields, "key", true)
		if err != nil {
			return comm.Packet{}, err
		}
		mod, err := keyField(fields, "modifier", false)
		if err != nil {
			return comm.Packet{}, err
		}
		return comm.KeyPress(key, mod), nil
	case CommandMouseMove:
		dx, err := intField(fields, "dx", 0, math.MinInt8, math.MaxInt8)
		if err != nil {
			return comm.Packet{}, err
		}
		dy, err := intField(fields, "dy", 0, math.MinInt8, math.MaxInt8)
		if err != nil {
			return comm.Packet{}, err
		}
		scale, err := intField(fields, "scale", 1, 0, math.MaxUint8)
		if err != nil {
			return comm.Packet{}, err
		}
		return comm.MouseMove(dx, dy, byte(scale)), nil
	case CommandMouseClick:
		buttons, err := buttonsField(fields)
		if err != nil {
			return comm.Packet{}, err
		}
		count, err := intField(fields, "count", 1, 1, math.MaxUint8)
		if err != nil {
			return comm.Packet{}, err
		}
		return comm.MouseClick(buttons, byte(count)), nil
	case CommandRaw:
		return rawPacket(fields)
	}
	return comm.Packet{}, badCommand("unknown type %q", typ.StringValue)
}

func intValue(v *structpb.Value, name string, min, max int) (int, error) {
	num, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, badCommand("%s must be a number", name)
	}
	f := num.NumberValue
	if f != math.Trunc(f) || f < float64(min) || f > float64(max) {
		return 0, badCommand("%s %v out of range [%d, %d]", name, f, min, max)
	}
	return int(f), nil
}

func intField(fields map[string]*structpb.Value, name string, def, min, max int) (int, error) {
	v, ok := fields[name]
	if !ok {
		return def, nil
	}
	return intValue(v, name, min, max)
}

func keyField(fields map[string]*structpb.Value, name string, required bool) (keys.Key, error) {
	v, ok := fields[name]
	if !ok {
		if required {
			return keys.KeyNone, badCommand("missing %s", name)
		}
		return keys.KeyNone, nil
	}
	if str, ok := v.GetKind().(*structpb.Value_StringValue); ok {
		key, err := keys.ParseKey(str.StringValue)
		if err != nil {
			return keys.KeyNone, badCommand("%s: %v", name, err)
		}
		return key, nil
	}
	n, err := intValue(v, name, 0, math.MaxUint8)
	return keys.Key(n), err
}

func buttonsField(fields map[string]*structpb.Value) (keys.Button, error) {
	v, ok := fields["buttons"]
	if !ok {
		return keys.MouseLeft, nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		b, err := keys.ParseButton(kind.StringValue)
		if err != nil {
			return 0, badCommand("buttons: %v", err)
		}
		return b, nil
	case *structpb.Value_ListValue:
		var buttons keys.Button
		for _, item := range kind.ListValue.GetValues() {
			str, ok := item.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return 0, badCommand("buttons must be names")
			}
			b, err := keys.ParseButton(str.StringValue)
			if err != nil {
				return 0, badCommand("buttons: %v", err)
			}
			buttons |= b
		}
		if buttons == 0 {
			return 0, badCommand("no buttons")
		}
		return buttons, nil
	}
	n, err := intValue(v, "buttons", 1, math.MaxUint8)
	return keys.Button(n), err
}

func rawPacket(fields map[string]*structpb.Value) (comm.Packet, error) {
	var cmd keys.CommandType
	switch kind := fields["cmd"].GetKind().(type) {
	case *structpb.Value_StringValue:
		t, err := keys.ParseCommandType(kind.StringValue)
		if err != nil {
			return comm.Packet{}, badCommand("cmd: %v", err)
		}
		cmd = t
	case *structpb.Value_NumberValue:
		n, err := intValue(fields["cmd"], "cmd", 0, math.MaxUint8)
		if err != nil {
			return comm.Packet{}, err
		}
		cmd = keys.CommandType(n)
	default:
		return comm.Packet{}, badCommand("missing cmd")
	}
	var data [3]int
	if v, ok := fields["data"]; ok {
		list, ok := v.GetKind().(*structpb.Value_ListValue)
		if !ok || len(list.ListValue.GetValues()) > len(data) {
			return comm.Packet{}, badCommand("data must be a list of up to %d numbers", len(data))
		}
		for i, item := range list.ListValue.GetValues() {
			n, err := intValue(item, fmt.Sprintf("data[%d]", i), -128, 255)
			if err != nil {
				return comm.Packet{}, err
			}
			data[i] = n
		}
	}
	pkt, err := comm.EncodeStrict(cmd, data[0], data[1], data[2])
	if err != nil {
		return comm.Packet{}, fmt.Errorf("%w: %v", ErrBadCommand, err)
	}
	return pkt, nil
}

// Reply is the result of a command.
type Reply struct {
	OK       bool
	Response string
	Error    string
}

// Encode encodes the reply as google.protobuf.Struct.
func (r Reply) Encode() ([]byte, error) {
	s := &structpb.Struct{Fields: map[string]*structpb.Value{
		"ok":       {Kind: &structpb.Value_BoolValue{BoolValue: r.OK}},
		"response": {Kind: &structpb.Value_StringValue{StringValue: r.Response}},
		"error":    {Kind: &structpb.Value_StringValue{StringValue: r.Error}},
	}}
	return proto.Marshal(s)
}

// DecodeReply decodes an encoded Reply.
func DecodeReply(payload []byte) (r Reply, err error) {
	var s structpb.Struct
	if err = proto.Unmarshal(payload, &s); err != nil {
		return
	}
	fields := s.GetFields()
	r.OK = fields["ok"].GetBoolValue()
	r.Response = fields["response"].GetStringValue()
	r.Error = fields["error"].GetStringValue()
	return
}
