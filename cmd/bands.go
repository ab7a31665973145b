package cmd

import (
	"bytes"
	"fmt"

	"github.com/mgutz/ansi"
	"github.com/radioburst/catpower/cmd/global"
	"github.com/radioburst/catpower/internal/bands"
	"github.com/radioburst/catpower/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var bandsCmd = &cobra.Command{
	Use:   "bands",
	Short: "Print the amateur radio band plan used for band labels",
	Run: func(cmd *cobra.Command, args []string) {
		setupUi()

		var rows [][]string
		for _, band := range bands.Table {
			rows = append(rows, []string{
				band.Label,
				fmt.Sprintf("%.3f", band.Lower),
				fmt.Sprintf("%.3f", band.Upper),
			})
		}

		tab := table.Table{
			Headers: []string{"Band", "From (MHz)", "To (MHz)"},
			Rows:    rows,
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			ui.Fatal("Error printing table: %v", tableErr)
		}
		ui.Printfln(buf.String())
	},
}

func init() {
	rootCmd.AddCommand(bandsCmd)
}
