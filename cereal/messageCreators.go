package cereal

import (
	"capnproto.org/go/capnp/v3"
	"pfeifer.dev/motorplan/cereal/motion"
)

func MoveRequestCreator(seg *capnp.Segment) (motion.MoveRequest, error) {
	return motion.NewRootMoveRequest(seg)
}

func MotionPlanCreator(seg *capnp.Segment) (motion.MotionPlan, error) {
	return motion.NewRootMotionPlan(seg)
}
