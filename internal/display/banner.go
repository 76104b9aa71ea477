package display

import (
	"fmt"
	"os"

	"github.com/backmassage/pixmaster/internal/term"
)

const banner = ` ____  _                          _
|  _ \(_)_  ___ __ ___   __ _ ___| |_ ___ _ __
| |_) | \ \/ / '_ ` + "`" + ` _ \ / _` + "`" + ` / __| __/ _ \ '__|
|  __/| |>  <| | | | | | (_| \__ \ ||  __/ |
|_|   |_/_/\_\_| |_| |_|\__,_|___/\__\___|_|`

// PrintBanner prints the ASCII art banner to stdout.
func PrintBanner() {
	fmt.Fprintln(os.Stdout, term.Paint(term.Brand, banner))
}
