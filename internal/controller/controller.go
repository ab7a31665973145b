package controller

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/radioburst/catpower/internal/cat"
	"github.com/radioburst/catpower/internal/configuration"
	"github.com/radioburst/catpower/internal/memory"
	"github.com/radioburst/catpower/internal/telemetry"
	"github.com/radioburst/catpower/internal/ui"
	"github.com/radioburst/catpower/internal/util"
)

const (
	MinDriveLevel = 0
	MaxDriveLevel = 100

	// number of recent power samples used for the trend estimate
	trendSampleCount = 5
)

type PowerController interface {
	Run(ctx context.Context) error
}

// powerController is a single sequential loop owning the device
// connection exclusively. Each cycle it polls power, SWR and (rate
// limited) frequency, tracks transmit state and steps the drive level
// toward the target power.
type powerController struct {
	channel cat.Commander
	memory  *memory.DriveMemory
	store   *telemetry.Store
	config  configuration.ControllerConfig

	currentDrive        int
	inTx                bool
	txStartTime         time.Time
	stableTxPower       float64
	stableDrive         int
	lastAdjustTime      time.Time
	lastFrequencyQuery  time.Time
	currentFrequencyKhz int

	powerWindow *util.SampleWindow
	swrWindow   *util.SampleWindow

	recentPowers []float64
}

func NewPowerController(
	channel cat.Commander,
	driveMemory *memory.DriveMemory,
	store *telemetry.Store,
	config configuration.ControllerConfig,
) PowerController {
	return &powerController{
		channel:     channel,
		memory:      driveMemory,
		store:       store,
		config:      config,
		powerWindow: util.CreateSampleWindow(config.PowerWindowSize),
		swrWindow:   util.CreateSampleWindow(config.SwrWindowSize),
	}
}

func (c *powerController) Run(ctx context.Context) error {
	// read the drive level the device is currently at, so the first
	// learned-drive comparison doesn't start from an arbitrary value
	response, err := c.channel.SendCommand("ZZPC;", "ZZPC", ";", true)
	if err != nil {
		return err
	}
	if driveLevel, convErr := strconv.Atoi(response); convErr == nil {
		c.currentDrive = util.Coerce(driveLevel, MinDriveLevel, MaxDriveLevel)
	}

	ui.Info("Starting power controller loop (target: %d W)", c.store.GetTargetPower())

	for {
		delay, err := c.cycle(time.Now())
		if err != nil {
			// transport faults are fatal to the loop, everything else
			// has already degraded to skipping a value
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
	}
}

// cycle runs one control iteration and returns the delay until the next
// one. A returned error is a transport fault and terminates the loop.
func (c *powerController) cycle(now time.Time) (time.Duration, error) {
	targetPower := c.store.GetTargetPower()

	if err := c.maybeQueryFrequency(now); err != nil {
		return 0, err
	}

	power, ok, err := c.queryPower()
	if err != nil {
		return 0, err
	}
	if !ok {
		return c.config.ErrorBackoff, nil
	}

	c.powerWindow.Append(power)
	avgPower := c.powerWindow.Avg()
	c.trackPowerTrend(power)

	swr, err := c.querySwr()
	if err != nil {
		return 0, err
	}
	c.swrWindow.Append(swr)
	avgSwr := c.swrWindow.Avg()

	// transmit detection uses the instantaneous reading, not the
	// average, so transitions are picked up within one cycle
	wasInTx := c.inTx
	c.inTx = power > c.config.TxPowerThreshold

	if c.inTx && !wasInTx {
		if err := c.onTransmitStart(now, targetPower); err != nil {
			return 0, err
		}
	}
	if wasInTx && !c.inTx {
		c.onTransmitEnd(targetPower)
	}

	powerError := float64(targetPower) - avgPower
	absError := math.Abs(powerError)

	if c.inTx && absError < c.config.StableTolerance {
		// most recent qualifying sample wins
		c.stableTxPower = avgPower
		c.stableDrive = c.currentDrive
	}

	if c.adjustmentEligible(now, avgPower, absError) {
		if err := c.adjustDrive(now, powerError); err != nil {
			return 0, err
		}
	}

	c.store.AppendHistory(telemetry.Reading{
		Timestamp:   now.Unix(),
		Power:       avgPower,
		TargetPower: targetPower,
		Drive:       c.currentDrive,
		Swr:         avgSwr,
	})

	return c.config.PollingRate, nil
}

// maybeQueryFrequency asks the device for its VFO frequency at most
// once per FrequencyQueryInterval. The raw value in Hz is published to
// telemetry; the learned-drive key uses it truncated to kHz.
func (c *powerController) maybeQueryFrequency(now time.Time) error {
	if now.Sub(c.lastFrequencyQuery) < c.config.FrequencyQueryInterval {
		return nil
	}
	c.lastFrequencyQuery = now

	response, err := c.channel.SendCommand("FA;", "FA", ";", true)
	if err != nil {
		return err
	}
	hz, convErr := strconv.Atoi(response)
	if convErr != nil {
		ui.Debug("Invalid frequency response: %s", response)
		return nil
	}

	c.currentFrequencyKhz = hz / 1000
	c.store.SetFrequency(hz)
	return nil
}

func (c *powerController) queryPower() (float64, bool, error) {
	response, err := c.channel.SendCommand("ZZRM5;", "ZZRM5", " W;", true)
	if err != nil {
		return 0, false, err
	}
	power, convErr := strconv.ParseFloat(response, 64)
	if convErr != nil {
		ui.Warning("Failed to get power reading: %q", response)
		return 0, false, nil
	}
	return power, true, nil
}

func (c *powerController) querySwr() (float64, error) {
	response, err := c.channel.SendCommand("ZZRM8;", "ZZRM8", ";", true)
	if err != nil {
		return 0, err
	}
	return ParseSwr(response), nil
}

// ParseSwr extracts the numeric ratio from an SWR payload such as
// "1.3 : 1". Anything unparsable yields 0.0.
func ParseSwr(response string) float64 {
	token, _, _ := strings.Cut(response, ":")
	value, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return 0.0
	}
	return value
}

func (c *powerController) onTransmitStart(now time.Time, targetPower int) error {
	c.txStartTime = now
	c.stableTxPower = 0
	c.stableDrive = 0

	key := memory.LearnKey{FrequencyKhz: c.currentFrequencyKhz, TargetPower: targetPower}
	learnedDrive, found := c.memory.Get(key)
	if found && learnedDrive != c.currentDrive {
		ui.Info("Transmit started on %d kHz, applying learned drive %d", c.currentFrequencyKhz, learnedDrive)
		return c.setDrive(learnedDrive)
	}

	ui.Info("Transmit started on %d kHz", c.currentFrequencyKhz)
	return nil
}

func (c *powerController) onTransmitEnd(targetPower int) {
	// only a drive level captured while power was within the stable
	// tolerance during this transmit interval is worth remembering
	if c.stableDrive <= 0 {
		ui.Info("Transmit ended without a stable drive level")
		return
	}

	key := memory.LearnKey{FrequencyKhz: c.currentFrequencyKhz, TargetPower: targetPower}
	c.memory.Put(key, c.stableDrive)
	ui.Info("Transmit ended, learned drive %d for %d kHz at %d W", c.stableDrive, c.currentFrequencyKhz, targetPower)
}

func (c *powerController) adjustmentEligible(now time.Time, avgPower float64, absError float64) bool {
	if !c.inTx {
		return false
	}
	if now.Sub(c.txStartTime) <= c.config.StabilizationPeriod {
		return false
	}
	if c.stableTxPower > 0 && avgPower < c.stableTxPower*c.config.PowerFallingRatio {
		// power is collapsing, likely the transmit interval is ending
		ui.Debug("Power falling (%.1f W of %.1f W stable), holding drive", avgPower, c.stableTxPower)
		return false
	}
	if absError <= c.config.Deadband {
		return false
	}
	if now.Sub(c.lastAdjustTime) <= c.config.AdjustmentInterval {
		return false
	}
	return true
}

// adjustDrive steps the drive level by one toward the target power. The
// device is asked for its actual drive level first; a third party may
// have changed it since we last set it.
func (c *powerController) adjustDrive(now time.Time, powerError float64) error {
	response, err := c.channel.SendCommand("ZZPC;", "ZZPC", ";", true)
	if err != nil {
		return err
	}
	deviceDrive, convErr := strconv.Atoi(response)
	if convErr != nil {
		ui.Warning("Invalid drive response: %q", response)
		return nil
	}

	delta := 1
	if powerError < 0 {
		delta = -1
	}
	nextDrive := util.Coerce(deviceDrive+delta, MinDriveLevel, MaxDriveLevel)
	if nextDrive == deviceDrive {
		return nil
	}

	ui.Info("Adjusting drive from %d to %d", deviceDrive, nextDrive)
	if err := c.setDrive(nextDrive); err != nil {
		return err
	}
	c.lastAdjustTime = now
	return nil
}

func (c *powerController) setDrive(driveLevel int) error {
	command := fmt.Sprintf("ZZPC%03d;", driveLevel)
	if _, err := c.channel.SendCommand(command, "", "", false); err != nil {
		return err
	}
	c.currentDrive = driveLevel
	return nil
}

// trackPowerTrend keeps a short history of instantaneous power readings
// and logs their slope. The trend is informational only and never gates
// an adjustment.
func (c *powerController) trackPowerTrend(power float64) {
	c.recentPowers = append(c.recentPowers, power)
	if len(c.recentPowers) > trendSampleCount {
		c.recentPowers = c.recentPowers[1:]
	}
	ui.Debug("Power trend: %+.2f W/cycle", util.LinearTrend(c.recentPowers))
}
