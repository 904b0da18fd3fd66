package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleBoardInviteTask processes a board invitation: decode the payload,
// send the email, report failure so Asynq retries.
func (j *JobService) handleBoardInviteTask(ctx context.Context, t *asynq.Task) error {
	var p BoardInvitePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshaling board invite payload: %w", err)
	}

	j.logger.Info().
		Str("task", TaskBoardInvite).
		Str("to", p.To).
		Str("board_title", p.BoardTitle).
		Msg("processing board invite task")

	if err := j.email.SendBoardInvite(p.To, p.InviterName, p.BoardTitle, p.BoardURL); err != nil {
		j.logger.Error().Err(err).Str("to", p.To).Msg("failed to send board invite")
		return err
	}

	return nil
}
