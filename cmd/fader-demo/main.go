package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"periph.io/x/host/v3"

	"github.com/BeatGlow/fader"
	"github.com/BeatGlow/fader/draw"
	"github.com/BeatGlow/fader/framebuffer"
	"github.com/BeatGlow/fader/internal/term"
	"github.com/BeatGlow/fader/sensor"
)

// display is a terminal preview or a framebuffer device.
type display interface {
	draw.Image
	sync.Locker
	Clear()
	Refresh() error
	Close() error
}

func main() {
	fbFlag := flag.String("fb", "", "Framebuffer device, such as /dev/fb0 (default: terminal preview)")
	widthFlag := flag.Int("width", term.DefaultConfig.Width, "Display width")
	heightFlag := flag.Int("height", term.DefaultConfig.Height, "Display height")
	adcFlag := flag.Bool("adc", false, "Read the brightness from a fader potentiometer on an ADS1115")
	i2cDeviceFlag := flag.Int("i2c-dev", sensor.DefaultI2CConfig.Device, "I²C device number (default: use first available)")
	i2cAddrFlag := flag.Uint("i2c-addr", uint(sensor.DefaultI2CConfig.Addr), "I²C device address")
	channelFlag := flag.Int("adc-channel", sensor.DefaultI2CConfig.Channel, "ADS1115 input channel")
	brightnessFlag := flag.Float64("brightness", 0.3, "Foreground brightness, without -adc")
	backgroundFlag := flag.String("background", "", "Background 8-bit BMP image (default: gradient)")
	bgBrightnessFlag := flag.Float64("bg-brightness", 0.2, "Background brightness")
	bgGammaFlag := flag.Float64("bg-gamma", 0.65, "Background gamma")
	iconsFlag := flag.String("icons", "", "Icon sprite sheet 8-bit BMP image with 16x16 tiles (default: generated)")
	temperatureColorFlag := flag.String("temperature-color", "#ffff00", "Temperature label color")
	humidityColorFlag := flag.String("humidity-color", "#00ffff", "Humidity label color")
	contentIntervalFlag := flag.Duration("content-interval", fader.DefaultSchedulerConfig.ContentInterval, "Content refresh interval")
	faderIntervalFlag := flag.Duration("fader-interval", fader.DefaultSchedulerConfig.FaderInterval, "Brightness refresh interval")
	seedFlag := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed for the readings")
	flag.Parse()

	temperatureColor, err := parseColor(*temperatureColorFlag)
	if err != nil {
		fatal(fmt.Errorf("invalid temperature color %q: %w", *temperatureColorFlag, err))
	}
	humidityColor, err := parseColor(*humidityColorFlag)
	if err != nil {
		fatal(fmt.Errorf("invalid humidity color %q: %w", *humidityColorFlag, err))
	}

	var brightness fader.BrightnessSource = sensor.Fixed(*brightnessFlag)
	if *adcFlag {
		if _, err = host.Init(); err != nil {
			fatal(err)
		}
		config := sensor.DefaultI2CConfig
		config.Device = *i2cDeviceFlag
		config.Addr = uint16(*i2cAddrFlag)
		config.Channel = *channelFlag

		adc, err := sensor.OpenI2C(&config, nil)
		if err != nil {
			fatal(err)
		}
		defer adc.Close()
		brightness = adc
	}
	fmt.Printf("using brightness: %v\n", brightness)

	var output display
	if *fbFlag != "" {
		output, err = framebuffer.Open(*fbFlag)
	} else {
		output, err = term.Open(&term.Config{
			Width:  *widthFlag,
			Height: *heightFlag,
		})
	}
	if err != nil {
		fatal(err)
	}

	s, err := newScene(output.Bounds(), sceneConfig{
		Background:           *backgroundFlag,
		BackgroundBrightness: *bgBrightnessFlag,
		BackgroundGamma:      *bgGammaFlag,
		Icons:                *iconsFlag,
		Brightness:           *brightnessFlag,
		TemperatureColor:     temperatureColor,
		HumidityColor:        humidityColor,
	})
	if err != nil {
		_ = output.Close()
		fatal(err)
	}

	scheduler, err := fader.NewScheduler(&fader.SchedulerConfig{
		ContentInterval: *contentIntervalFlag,
		FaderInterval:   *faderIntervalFlag,
		PollInterval:    fader.DefaultSchedulerConfig.PollInterval,
	}, fader.SystemClock{}, brightness, s.panel(*seedFlag))
	if err == nil {
		err = scheduler.Bind(s.foreground, s.colors)
	}
	if err != nil {
		_ = output.Close()
		fatal(err)
	}
	scheduler.SetLocker(output)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if t, ok := output.(*term.Display); ok {
		go func() {
			select {
			case <-t.Quit():
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	err = scheduler.Run(ctx, func(fader.Fired) error {
		output.Clear()
		s.Draw(output)
		return output.Refresh()
	})
	_ = output.Close()
	if err != nil && !errors.Is(err, context.Canceled) {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
