package email

import "fmt"

// SendBoardInvite sends a board collaboration invitation.
func (c *Client) SendBoardInvite(to, inviterName, boardTitle, boardURL string) error {
	data := map[string]string{
		"InviterName": inviterName,
		"BoardTitle":  boardTitle,
		"BoardURL":    boardURL,
	}

	return c.SendEmail(
		to,
		fmt.Sprintf("%s invited you to %q", inviterName, boardTitle),
		TemplateBoardInvite,
		data,
	)
}
