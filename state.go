package main

import (
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
	"pfeifer.dev/motorplan/cereal"
	"pfeifer.dev/motorplan/cereal/motion"
	"pfeifer.dev/motorplan/params"
	"pfeifer.dev/motorplan/planner"
	ms "pfeifer.dev/motorplan/settings"
	"pfeifer.dev/motorplan/utils"
)

type State struct {
	LastPlan cereal.PlanRecord
	Valid    utils.Tracker[bool]
	Loop     utils.UpdateTracker
}

// Handle plans a request with the saved limits unless it carries its own.
// Requests that cannot be planned give an invalid record.
func (s *State) Handle(req motion.MoveRequest) cereal.PlanRecord {
	initial, final := cereal.MoveRequestStates(req)
	limits := cereal.MoveRequestLimits(req, ms.Settings.Limits)

	plan, err := planner.Compute(initial, final, limits)
	utils.Logde(errors.Wrap(err, "could not plan requested move"))

	record := cereal.PlanRecord{
		Plan:    plan,
		Limits:  limits,
		Initial: initial,
		Final:   final,
		Valid:   err == nil,
	}
	if s.Valid.Update(record.Valid) {
		slog.Info("plan validity changed", "valid", record.Valid)
	}
	if record.Valid && record != s.LastPlan {
		utils.Logwe(SaveLastPlan(record))
	}
	s.LastPlan = record
	return record
}

func SaveLastPlan(record cereal.PlanRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "could not encode last plan")
	}
	return params.PutParam(params.LAST_MOTION_PLAN, data)
}

func LoadLastPlan() (record cereal.PlanRecord, err error) {
	data, err := params.GetParam(params.LAST_MOTION_PLAN)
	if err != nil {
		return record, err
	}
	err = json.Unmarshal(data, &record)
	return record, errors.Wrap(err, "could not parse last plan")
}
