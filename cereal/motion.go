package cereal

import (
	"time"

	"pfeifer.dev/motorplan/cereal/motion"
	"pfeifer.dev/motorplan/planner"
)

var startTime = time.Now()

// GetTime is the monotonic time in nanoseconds since the process started.
func GetTime() uint64 {
	return uint64(time.Since(startTime).Nanoseconds())
}

// MoveRequestStates returns the requested initial and final states.
func MoveRequestStates(req motion.MoveRequest) (initial, final planner.State) {
	initial = planner.State{Position: req.InitialPosition(), Speed: req.InitialSpeed()}
	final = planner.State{Position: req.FinalPosition(), Speed: req.FinalSpeed()}
	return initial, final
}

// MoveRequestLimits is the request's limit override, or fallback when it
// carries none.
func MoveRequestLimits(req motion.MoveRequest, fallback planner.Limits) planner.Limits {
	if !req.HasLimits() {
		return fallback
	}
	return planner.Limits{Speed: req.SpeedLimit(), Accel: req.AccelLimit(), Deccel: req.DeccelLimit()}
}

func EncodeMoveRequest(req motion.MoveRequest, initial, final planner.State, limits *planner.Limits) {
	req.SetInitialPosition(initial.Position)
	req.SetInitialSpeed(initial.Speed)
	req.SetFinalPosition(final.Position)
	req.SetFinalSpeed(final.Speed)
	req.SetHasLimits(limits != nil)
	if limits != nil {
		req.SetSpeedLimit(limits.Speed)
		req.SetAccelLimit(limits.Accel)
		req.SetDeccelLimit(limits.Deccel)
	}
}

// PlanRecord is everything needed to replay a plan on the receiving side.
type PlanRecord struct {
	Plan    planner.PositionChangePlan
	Limits  planner.Limits
	Initial planner.State
	Final   planner.State
	Valid   bool
}

func (r PlanRecord) Bound() planner.Bound {
	return planner.Bind(r.Plan, r.Limits, r.Initial)
}

func EncodePlan(msg motion.MotionPlan, r PlanRecord) {
	msg.SetLogMonoTime(GetTime())
	msg.SetValid(r.Valid)

	msg.SetSpeedLimit(r.Limits.Speed)
	msg.SetAccelLimit(r.Limits.Accel)
	msg.SetDeccelLimit(r.Limits.Deccel)

	msg.SetInitialPosition(r.Initial.Position)
	msg.SetInitialSpeed(r.Initial.Speed)
	msg.SetFinalPosition(r.Final.Position)
	msg.SetFinalSpeed(r.Final.Speed)

	msg.SetSign(int32(r.Plan.Sign))
	msg.SetTAccel(r.Plan.Plan.TAccel)
	msg.SetTSteady(r.Plan.Plan.TSteady)
	msg.SetTDeccel(r.Plan.Plan.TDeccel)
	msg.SetTPreDeccel(r.Plan.TPreDeccel)
	msg.SetTPostAccel(r.Plan.TPostAccel)
}

func DecodePlan(msg motion.MotionPlan) PlanRecord {
	return PlanRecord{
		Plan: planner.PositionChangePlan{
			Sign: int(msg.Sign()),
			Plan: planner.PositiveSpeedPlan{
				TAccel:  msg.TAccel(),
				TSteady: msg.TSteady(),
				TDeccel: msg.TDeccel(),
			},
			TPreDeccel: msg.TPreDeccel(),
			TPostAccel: msg.TPostAccel(),
		},
		Limits: planner.Limits{
			Speed:  msg.SpeedLimit(),
			Accel:  msg.AccelLimit(),
			Deccel: msg.DeccelLimit(),
		},
		Initial: planner.State{Position: msg.InitialPosition(), Speed: msg.InitialSpeed()},
		Final:   planner.State{Position: msg.FinalPosition(), Speed: msg.FinalSpeed()},
		Valid:   msg.Valid(),
	}
}
