package cereal

import (
	"capnproto.org/go/capnp/v3"
	"pfeifer.dev/motorplan/cereal/motion"
)

func MoveRequestReader(msg *capnp.Message) (motion.MoveRequest, error) {
	return motion.ReadRootMoveRequest(msg)
}

func MotionPlanReader(msg *capnp.Message) (motion.MotionPlan, error) {
	return motion.ReadRootMotionPlan(msg)
}
