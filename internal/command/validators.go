// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/urfave/cli/v3"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks flag combinations a single flag validator can't
// see.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.IsSet("grandparent") && !c.IsSet("parent") {
		return fmt.Errorf("--grandparent requires --parent")
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}
	s, _ := value.(string)
	if !slices.Contains(validOutputFlagValues, s) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func NonNegativeValidator(value any) error {
	var negative bool
	switch v := value.(type) {
	case int:
		negative = v < 0
	case int64:
		negative = v < 0
	case time.Duration:
		negative = v < 0
	}
	if negative {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
