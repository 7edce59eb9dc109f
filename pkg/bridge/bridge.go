// Package bridge forwards commands received over MQTT to the device.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/golang/glog"

	"github.com/robotalks/hidlink/pkg/comm"
)

// Sender sends packets to the device, implemented by *comm.Sender.
type Sender interface {
	Send(comm.Packet) (string, error)
}

// Bridge subscribes <id>/cmd and replies on <id>/reply.
type Bridge struct {
	Queue  *Queue
	Config Config
	Sender Sender

	metaJSON []byte
}

// New creates a Bridge. The MQTT will clears the retained meta when the
// bridge disappears.
func New(conf Config, sender Sender) (*Bridge, error) {
	if conf.ID == "" {
		return nil, &comm.ConfigurationError{Field: "bridge id", Value: `""`, Reason: "required"}
	}
	meta, err := json.Marshal(&conf.Meta)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(conf.BrokerURL)
	if err != nil {
		return nil, &comm.ConfigurationError{Field: "broker URL", Value: conf.BrokerURL, Reason: err.Error()}
	}
	opts.SetBinaryWill(topicPrefix+conf.MetaTopic(), nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("hidlink:" + conf.ID)
	}
	b := &Bridge{
		Queue:    NewQueue(opts, topicPrefix),
		Config:   conf,
		Sender:   sender,
		metaJSON: meta,
	}
	b.Queue.OnConnect = func(q *Queue) {
		q.PubWith(conf.MetaTopic(), b.metaJSON, 1, true)
	}
	return b, nil
}

// Name implements framework.Named.
func (b *Bridge) Name() string {
	return "bridge"
}

// Run implements framework.Runnable.
func (b *Bridge) Run(ctx context.Context) error {
	sub := b.Queue.Sub(b.Config.CommandTopic(), b.handleCommand)
	defer sub.Close()
	token := b.Queue.Connect()
	if token.Wait() && token.Error() != nil {
		// with auto reconnect, only the first connect can fail.
		return fmt.Errorf("connect %s: %w", b.Config.BrokerURL, token.Error())
	}
	glog.Infof("bridge %s serving %s%s", b.Config.ID, b.Queue.TopicPrefix, b.Config.CommandTopic())
	<-ctx.Done()
	b.Queue.PubWith(b.Config.MetaTopic(), nil, 1, true).Wait()
	b.Queue.Close()
	return ctx.Err()
}

// HandleCommand executes an encoded command and returns the reply.
func (b *Bridge) HandleCommand(payload []byte) Reply {
	pkt, err := DecodeCommand(payload)
	if err != nil {
		glog.Warningf("rejected command: %v", err)
		return Reply{Error: err.Error()}
	}
	resp, err := b.Sender.Send(pkt)
	if err != nil {
		return Reply{Response: resp, Error: err.Error()}
	}
	return Reply{OK: true, Response: resp}
}

func (b *Bridge) handleCommand(_ string, payload []byte) {
	reply, err := b.HandleCommand(payload).Encode()
	if err != nil {
		glog.Errorf("encode reply: %v", err)
		return
	}
	b.Queue.Pub(b.Config.ReplyTopic(), reply)
}
