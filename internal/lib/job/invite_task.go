package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskBoardInvite is the task type string Asynq routes to the board-invite
// handler.
const TaskBoardInvite = "email:board_invite"

// BoardInvitePayload is the JSON payload for a board invitation task.
type BoardInvitePayload struct {
	To          string `json:"to"`
	InviterName string `json:"inviter_name"`
	BoardTitle  string `json:"board_title"`
	BoardURL    string `json:"board_url"`
}

// NewBoardInviteTask constructs a board invitation task: three retries on
// the default queue, killed after 30 seconds.
func NewBoardInviteTask(p BoardInvitePayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskBoardInvite,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
