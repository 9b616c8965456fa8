package settings

import (
	"time"
)

const (
	DEFAULT_SEGMENT_SIZE = 2 * 1024 * 1024
	LOOP_DELAY           = 50 * time.Millisecond
	LOAD_RETRIES         = 3
	UPDATE_MA_LENGTH     = 20
)

const (
	REQUEST_TOPIC = "motionRequest"
	PLAN_TOPIC    = "motionPlan"
)
