package cereal

import (
	"capnproto.org/go/capnp/v3"
	"github.com/pfeiferj/gomsgq"
	"github.com/pkg/errors"
	"pfeifer.dev/motorplan/settings"
)

// MessageCreator allocates the root struct of a new message.
type MessageCreator[T any] func(*capnp.Segment) (T, error)

type Publisher[T any] struct {
	Pub     gomsgq.MsgqPublisher
	creator MessageCreator[T]
}

func (p *Publisher[T]) Send(msg *capnp.Message) error {
	b, err := msg.Marshal()
	if err != nil {
		return errors.Wrap(err, "could not marshal message")
	}
	p.Pub.Send(b)
	return nil
}

func (p *Publisher[T]) NewMessage() (*capnp.Message, T, error) {
	return NewMessage(p.creator)
}

// NewMessage builds a single segment message around a fresh root.
func NewMessage[T any](creator MessageCreator[T]) (msg *capnp.Message, obj T, err error) {
	msg, seg, err := capnp.NewMessage(capnp.SingleSegment(nil))
	if err != nil {
		return nil, obj, errors.Wrap(err, "could not allocate message")
	}

	obj, err = creator(seg)
	if err != nil {
		return nil, obj, errors.Wrap(err, "could not allocate root")
	}
	return msg, obj, nil
}

func NewPublisher[T any](name string, creator MessageCreator[T]) (publisher Publisher[T]) {
	msgq := gomsgq.Msgq{}
	err := msgq.Init(name, settings.DEFAULT_SEGMENT_SIZE)
	if err != nil {
		panic(err)
	}
	pub := gomsgq.MsgqPublisher{}
	pub.Init(msgq)

	publisher.Pub = pub
	publisher.creator = creator
	return publisher
}
