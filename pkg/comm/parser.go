package comm

import "github.com/robotalks/hidlink/pkg/keys"

// Parser reassembles packets from a byte stream.
// Bytes outside a frame are skipped until StartByte is seen. A frame
// with a bad end byte is dropped; if that byte is StartByte, it begins
// the next frame.
type Parser struct {
	state  parseState
	packet Packet
}

// ParseResult indicates the result after one parsing step.
type ParseResult struct {
	// Packet is set when a frame completes.
	Packet *Packet
	// Dropped is the number of bytes discarded by this step.
	Dropped int
}

type parseState int

const (
	stateStart parseState = iota // waiting for StartByte
	stateType                    // waiting for command type
	stateData1
	stateData2
	stateData3
	stateEnd // waiting for EndByte
)

// Receiving indicates a frame is partially received.
func (p *Parser) Receiving() bool {
	return p.state != stateStart
}

// Reset discards any partial frame.
func (p *Parser) Reset() (pr ParseResult) {
	pr.Dropped = int(p.state)
	p.state = stateStart
	return
}

// Parse consumes one byte.
func (p *Parser) Parse(b byte) (pr ParseResult) {
	switch p.state {
	case stateStart:
		if b == StartByte {
			p.state = stateType
		} else {
			pr.Dropped = 1
		}
	case stateType:
		p.packet.Type = keys.CommandType(b)
		p.state = stateData1
	case stateData1, stateData2, stateData3:
		p.packet.Data[p.state-stateData1] = b
		p.state++
	case stateEnd:
		if b == EndByte {
			pkt := p.packet
			pr.Packet = &pkt
			p.state = stateStart
			break
		}
		// START + type + 3 data bytes are lost.
		pr.Dropped = PacketSize - 1
		if b == StartByte {
			p.state = stateType
		} else {
			pr.Dropped++
			p.state = stateStart
		}
	}
	return
}

// Feed parses a chunk and returns all completed packets along with the
// number of bytes dropped.
func (p *Parser) Feed(data []byte) (pkts []Packet, dropped int) {
	for _, b := range data {
		pr := p.Parse(b)
		dropped += pr.Dropped
		if pr.Packet != nil {
			pkts = append(pkts, *pr.Packet)
		}
	}
	return
}
