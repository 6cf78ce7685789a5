// Package analysis runs the layout checks over a parsed partition table.
//
// Every check is a pure function over the entry list and a FlashProfile and
// returns a structured report. Findings are advisory: nothing here decides
// whether a run succeeded.
package analysis

import (
	"fmt"

	"github.com/deploymenttheory/go-partcheck/pkg/partition"
)

// ESP32S3 16MB flash layout defaults
const (
	DefaultFlashSize    = 16 * partition.MiB
	DefaultReservedSize = 0x10000 // bootloader + partition table
	DefaultMinOTASlots  = 2

	DefaultAppAmpleSize    = 6 * partition.MiB
	DefaultAppModerateSize = 3 * partition.MiB
	DefaultSPIFFSAmpleSize = 2 * partition.MiB
	DefaultHighUtilization = 95.0
	DefaultGoodUtilization = 80.0
)

// FlashProfile describes the device flash budget and the advisory thresholds
type FlashProfile struct {
	Name         string `json:"name" yaml:"name" mapstructure:"name"`
	FlashSize    uint64 `json:"flash_size" yaml:"flash_size" mapstructure:"flash_size"`
	ReservedSize uint64 `json:"reserved_size" yaml:"reserved_size" mapstructure:"reserved_size"`
	MinOTASlots  int    `json:"min_ota_slots" yaml:"min_ota_slots" mapstructure:"min_ota_slots"`

	AppAmpleSize    uint64  `json:"app_ample_size" yaml:"app_ample_size" mapstructure:"app_ample_size"`
	AppModerateSize uint64  `json:"app_moderate_size" yaml:"app_moderate_size" mapstructure:"app_moderate_size"`
	SPIFFSAmpleSize uint64  `json:"spiffs_ample_size" yaml:"spiffs_ample_size" mapstructure:"spiffs_ample_size"`
	HighUtilization float64 `json:"high_utilization" yaml:"high_utilization" mapstructure:"high_utilization"`
	GoodUtilization float64 `json:"good_utilization" yaml:"good_utilization" mapstructure:"good_utilization"`
}

// DefaultProfile returns the ESP32S3 16MB profile
func DefaultProfile() FlashProfile {
	return FlashProfile{
		Name:            "esp32s3-16mb",
		FlashSize:       DefaultFlashSize,
		ReservedSize:    DefaultReservedSize,
		MinOTASlots:     DefaultMinOTASlots,
		AppAmpleSize:    DefaultAppAmpleSize,
		AppModerateSize: DefaultAppModerateSize,
		SPIFFSAmpleSize: DefaultSPIFFSAmpleSize,
		HighUtilization: DefaultHighUtilization,
		GoodUtilization: DefaultGoodUtilization,
	}
}

// Available returns the flash left for partitions after the reserved region
func (p FlashProfile) Available() uint64 {
	return p.FlashSize - p.ReservedSize
}

// Validate checks the profile is usable
func (p FlashProfile) Validate() error {
	if p.FlashSize == 0 {
		return fmt.Errorf("flash size must be greater than zero")
	}
	if p.ReservedSize >= p.FlashSize {
		return fmt.Errorf("reserved size 0x%x must be smaller than flash size 0x%x", p.ReservedSize, p.FlashSize)
	}
	if p.MinOTASlots < 1 {
		return fmt.Errorf("min OTA slots must be at least 1, got %d", p.MinOTASlots)
	}
	if p.AppModerateSize > p.AppAmpleSize {
		return fmt.Errorf("app moderate size must not exceed app ample size")
	}
	if p.GoodUtilization > p.HighUtilization {
		return fmt.Errorf("good utilization threshold must not exceed high utilization threshold")
	}
	return nil
}
