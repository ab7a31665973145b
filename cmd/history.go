package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/mgutz/ansi"
	"github.com/radioburst/catpower/cmd/global"
	"github.com/radioburst/catpower/internal/telemetry"
	"github.com/radioburst/catpower/internal/ui"
	"github.com/radioburst/catpower/internal/util"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var historyServer string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the reading history of a running catpower daemon",
	Run: func(cmd *cobra.Command, args []string) {
		setupUi()

		readings, err := fetchHistory(historyServer)
		if err != nil {
			ui.Fatal("Error fetching history: %v", err)
		}
		if len(readings) == 0 {
			ui.Printfln("No readings yet...")
			return
		}

		powerValues := make([]float64, 0, len(readings))
		swrValues := make([]float64, 0, len(readings))
		for _, reading := range readings {
			powerValues = append(powerValues, reading.Power)
			swrValues = append(swrValues, reading.Swr)
		}
		latest := readings[len(readings)-1]

		// print table
		tab := table.Table{
			Headers: []string{"", ""},
			Rows: [][]string{
				{"Readings", strconv.Itoa(len(readings))},
				{"Target Power", fmt.Sprintf("%d W", latest.TargetPower)},
				{"Power", fmt.Sprintf("%.1f W", latest.Power)},
				{"Avg Power", fmt.Sprintf("%.1f W", util.Avg(powerValues))},
				{"Drive", strconv.Itoa(latest.Drive)},
				{"SWR", fmt.Sprintf("%.2f : 1", latest.Swr)},
				{"Avg SWR", fmt.Sprintf("%.2f : 1", util.Avg(swrValues))},
			},
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

		// print graph
		caption := "Power (W) / Cycle"
		graph := asciigraph.Plot(powerValues, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln(graph)
	},
}

func fetchHistory(server string) ([]telemetry.Reading, error) {
	client := http.Client{Timeout: 10 * time.Second}
	response, err := client.Get(server + "/history/")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", response.Status)
	}

	var readings []telemetry.Reading
	if err := json.NewDecoder(response.Body).Decode(&readings); err != nil {
		return nil, err
	}
	return readings, nil
}

func init() {
	historyCmd.Flags().StringVarP(&historyServer, "server", "s", "http://localhost:8080", "Base URL of the catpower REST api")
	rootCmd.AddCommand(historyCmd)
}
