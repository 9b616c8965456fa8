// Accessors for motion.capnp. Offsets must match the schema layout. Type ids
// are the ones capnp assigns to declarations without an explicit id, the first
// 8 bytes of md5(file id little endian + name) with the top bit set.

package motion

import (
	math "math"

	capnp "capnproto.org/go/capnp/v3"
)

type MoveRequest capnp.Struct

// MoveRequest_TypeID is the unique identifier for the type MoveRequest.
const MoveRequest_TypeID = 0xd66913d022f8de84

var moveRequestSize = capnp.ObjectSize{DataSize: 64, PointerCount: 0}

func NewMoveRequest(s *capnp.Segment) (MoveRequest, error) {
	st, err := capnp.NewStruct(s, moveRequestSize)
	return MoveRequest(st), err
}

func NewRootMoveRequest(s *capnp.Segment) (MoveRequest, error) {
	st, err := capnp.NewRootStruct(s, moveRequestSize)
	return MoveRequest(st), err
}

func ReadRootMoveRequest(msg *capnp.Message) (MoveRequest, error) {
	root, err := msg.Root()
	return MoveRequest(root.Struct()), err
}

func (s MoveRequest) IsValid() bool {
	return capnp.Struct(s).IsValid()
}

func (s MoveRequest) InitialPosition() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(0))
}

func (s MoveRequest) SetInitialPosition(v float64) {
	capnp.Struct(s).SetUint64(0, math.Float64bits(v))
}

func (s MoveRequest) InitialSpeed() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(8))
}

func (s MoveRequest) SetInitialSpeed(v float64) {
	capnp.Struct(s).SetUint64(8, math.Float64bits(v))
}

func (s MoveRequest) FinalPosition() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(16))
}

func (s MoveRequest) SetFinalPosition(v float64) {
	capnp.Struct(s).SetUint64(16, math.Float64bits(v))
}

func (s MoveRequest) FinalSpeed() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(24))
}

func (s MoveRequest) SetFinalSpeed(v float64) {
	capnp.Struct(s).SetUint64(24, math.Float64bits(v))
}

func (s MoveRequest) SpeedLimit() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(32))
}

func (s MoveRequest) SetSpeedLimit(v float64) {
	capnp.Struct(s).SetUint64(32, math.Float64bits(v))
}

func (s MoveRequest) AccelLimit() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(40))
}

func (s MoveRequest) SetAccelLimit(v float64) {
	capnp.Struct(s).SetUint64(40, math.Float64bits(v))
}

func (s MoveRequest) DeccelLimit() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(48))
}

func (s MoveRequest) SetDeccelLimit(v float64) {
	capnp.Struct(s).SetUint64(48, math.Float64bits(v))
}

func (s MoveRequest) HasLimits() bool {
	return capnp.Struct(s).Bit(448)
}

func (s MoveRequest) SetHasLimits(v bool) {
	capnp.Struct(s).SetBit(448, v)
}

type MotionPlan capnp.Struct

// MotionPlan_TypeID is the unique identifier for the type MotionPlan.
const MotionPlan_TypeID = 0xc8795d31804db180

var motionPlanSize = capnp.ObjectSize{DataSize: 112, PointerCount: 0}

func NewMotionPlan(s *capnp.Segment) (MotionPlan, error) {
	st, err := capnp.NewStruct(s, motionPlanSize)
	return MotionPlan(st), err
}

func NewRootMotionPlan(s *capnp.Segment) (MotionPlan, error) {
	st, err := capnp.NewRootStruct(s, motionPlanSize)
	return MotionPlan(st), err
}

func ReadRootMotionPlan(msg *capnp.Message) (MotionPlan, error) {
	root, err := msg.Root()
	return MotionPlan(root.Struct()), err
}

func (s MotionPlan) IsValid() bool {
	return capnp.Struct(s).IsValid()
}

func (s MotionPlan) LogMonoTime() uint64 {
	return capnp.Struct(s).Uint64(0)
}

func (s MotionPlan) SetLogMonoTime(v uint64) {
	capnp.Struct(s).SetUint64(0, v)
}

func (s MotionPlan) SpeedLimit() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(8))
}

func (s MotionPlan) SetSpeedLimit(v float64) {
	capnp.Struct(s).SetUint64(8, math.Float64bits(v))
}

func (s MotionPlan) AccelLimit() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(16))
}

func (s MotionPlan) SetAccelLimit(v float64) {
	capnp.Struct(s).SetUint64(16, math.Float64bits(v))
}

func (s MotionPlan) DeccelLimit() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(24))
}

func (s MotionPlan) SetDeccelLimit(v float64) {
	capnp.Struct(s).SetUint64(24, math.Float64bits(v))
}

func (s MotionPlan) InitialPosition() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(32))
}

func (s MotionPlan) SetInitialPosition(v float64) {
	capnp.Struct(s).SetUint64(32, math.Float64bits(v))
}

func (s MotionPlan) InitialSpeed() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(40))
}

func (s MotionPlan) SetInitialSpeed(v float64) {
	capnp.Struct(s).SetUint64(40, math.Float64bits(v))
}

func (s MotionPlan) Sign() int32 {
	return int32(capnp.Struct(s).Uint32(48))
}

func (s MotionPlan) SetSign(v int32) {
	capnp.Struct(s).SetUint32(48, uint32(v))
}

func (s MotionPlan) Valid() bool {
	return capnp.Struct(s).Bit(416)
}

func (s MotionPlan) SetValid(v bool) {
	capnp.Struct(s).SetBit(416, v)
}

func (s MotionPlan) TAccel() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(56))
}

func (s MotionPlan) SetTAccel(v float64) {
	capnp.Struct(s).SetUint64(56, math.Float64bits(v))
}

func (s MotionPlan) TSteady() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(64))
}

func (s MotionPlan) SetTSteady(v float64) {
	capnp.Struct(s).SetUint64(64, math.Float64bits(v))
}

func (s MotionPlan) TDeccel() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(72))
}

func (s MotionPlan) SetTDeccel(v float64) {
	capnp.Struct(s).SetUint64(72, math.Float64bits(v))
}

func (s MotionPlan) TPreDeccel() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(80))
}

func (s MotionPlan) SetTPreDeccel(v float64) {
	capnp.Struct(s).SetUint64(80, math.Float64bits(v))
}

func (s MotionPlan) TPostAccel() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(88))
}

func (s MotionPlan) SetTPostAccel(v float64) {
	capnp.Struct(s).SetUint64(88, math.Float64bits(v))
}

func (s MotionPlan) FinalPosition() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(96))
}

func (s MotionPlan) SetFinalPosition(v float64) {
	capnp.Struct(s).SetUint64(96, math.Float64bits(v))
}

func (s MotionPlan) FinalSpeed() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(104))
}

func (s MotionPlan) SetFinalSpeed(v float64) {
	capnp.Struct(s).SetUint64(104, math.Float64bits(v))
}
