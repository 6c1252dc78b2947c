package cli

import (
	"errors"
	"io"

	"github.com/pterm/pterm"

	"github.com/sdejongh/hashmerge/pkg/models"
)

// PrintError writes err to w, as a warning when the user aborted
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}

	if errors.Is(err, models.ErrUserDeclined) {
		pterm.Warning.WithWriter(w).Println(err.Error())
		return
	}

	pterm.Error.WithWriter(w).Println(err.Error())

	var ve *models.ValidationError
	if errors.As(err, &ve) {
		pterm.Info.WithWriter(w).Println("Rerun with --help for more information.")
	}
}
