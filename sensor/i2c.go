package sensor

import (
	"fmt"
	"strconv"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

// I2CConfig describes an ADS1115 analog to digital converter on an I²C bus.
type I2CConfig struct {
	// Device is the I²C device, use -1 to use the first available device.
	Device int

	// Addr is the I²C address.
	Addr uint16

	// Channel is the single ended input the fader is connected to, 0-3.
	Channel int

	// Reference is the full scale voltage.
	Reference physic.ElectricPotential
}

var DefaultI2CConfig = I2CConfig{
	Device:    -1,
	Addr:      0x48,
	Channel:   0,
	Reference: 3300 * physic.MilliVolt,
}

var channels = []ads1x15.Channel{
	ads1x15.Channel0,
	ads1x15.Channel1,
	ads1x15.Channel2,
	ads1x15.Channel3,
}

// I2CADC is an [ADC] on an ADS1115 converter, which owns its I²C bus.
type I2CADC struct {
	*ADC
	bus i2c.BusCloser
}

// OpenI2C opens a fader potentiometer connected to an ADS1115 converter.
// The host drivers must be initialized before calling OpenI2C.
func OpenI2C(config *I2CConfig, adcConfig *ADCConfig) (*I2CADC, error) {
	if config == nil {
		config = new(I2CConfig)
		*config = DefaultI2CConfig
	}
	if config.Channel < 0 || config.Channel >= len(channels) {
		return nil, fmt.Errorf("sensor: invalid ADS1115 channel %d", config.Channel)
	}

	var (
		bus i2c.BusCloser
		err error
	)
	if config.Device < 0 {
		bus, err = i2creg.Open("")
	} else {
		bus, err = i2creg.Open(strconv.FormatInt(int64(config.Device), 10))
	}
	if err != nil {
		return nil, err
	}

	dev, err := ads1x15.NewADS1115(bus, &ads1x15.Opts{I2cAddress: config.Addr})
	if err != nil {
		_ = bus.Close()
		return nil, err
	}

	pin, err := dev.PinForChannel(channels[config.Channel], config.Reference, 50*physic.Hertz, ads1x15.SaveEnergy)
	if err != nil {
		_ = bus.Close()
		return nil, err
	}

	adc, err := NewADC(pin, adcConfig)
	if err != nil {
		_ = pin.Halt()
		_ = bus.Close()
		return nil, err
	}

	return &I2CADC{ADC: adc, bus: bus}, nil
}

func (c *I2CADC) String() string {
	return fmt.Sprintf("%s on I²C bus %s", c.ADC, c.bus)
}

// Close halts the converter and closes the bus.
func (c *I2CADC) Close() error {
	if err := c.Halt(); err != nil {
		_ = c.bus.Close()
		return err
	}
	return c.bus.Close()
}
