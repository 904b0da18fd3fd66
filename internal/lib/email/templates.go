package email

import "embed"

// Template names an email template under templates/.
type Template string

const (
	// TemplateBoardInvite corresponds to templates/board_invite.html.
	TemplateBoardInvite Template = "board_invite"
)

// Templates ship inside the binary; rendering never touches the filesystem.
//
//go:embed templates/*.html
var templateFS embed.FS
