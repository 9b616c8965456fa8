package main

import (
	"log/slog"
	"time"

	"pfeifer.dev/motorplan/cereal"
	"pfeifer.dev/motorplan/cli"
	ms "pfeifer.dev/motorplan/settings"
	"pfeifer.dev/motorplan/utils"
)

func main() {
	cli.Handle()
	ms.Settings.LoadWithRetries(ms.LOAD_RETRIES)
	utils.Check(ms.Settings.Validate())

	state := State{}
	state.Loop.Init(ms.UPDATE_MA_LENGTH)
	if last, err := LoadLastPlan(); err == nil {
		state.LastPlan = last
		slog.Info("restored last plan", "valid", last.Valid, "total", last.Plan.TTotal())
	}

	sub := cereal.NewSubscriber(ms.Settings.RequestTopic, cereal.MoveRequestReader, true)
	defer sub.Sub.Msgq.Close()
	pub := cereal.NewPublisher(ms.Settings.PlanTopic, cereal.MotionPlanCreator)

	for {
		time.Sleep(ms.LOOP_DELAY)
		req, success := sub.Read()
		if !success {
			continue
		}
		state.Loop.Update()

		record := state.Handle(req)

		msg, out, err := pub.NewMessage()
		if err != nil {
			utils.Loge(err)
			continue
		}
		cereal.EncodePlan(out, record)
		utils.Loge(pub.Send(msg))
		logPlan(record, state.Loop.Period())
	}
}

func logPlan(record cereal.PlanRecord, period float64) {
	slog.Debug("motionPlan",
		"valid", record.Valid,
		"from", record.Initial.Position,
		"to", record.Final.Position,
		"sign", record.Plan.Sign,
		"tPreDeccel", record.Plan.TPreDeccel,
		"tAccel", record.Plan.Plan.TAccel,
		"tSteady", record.Plan.Plan.TSteady,
		"tDeccel", record.Plan.Plan.TDeccel,
		"tPostAccel", record.Plan.TPostAccel,
		"requestPeriod", period,
	)
}
