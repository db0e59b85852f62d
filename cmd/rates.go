package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rocketboost-admin/models"
	"rocketboost-admin/pricing"
	"rocketboost-admin/service"
	"rocketboost-admin/utils"
)

var ratesJSON bool

// ratesCmd prints the configured rate tables
var ratesCmd = &cobra.Command{
	Use:   "rates [platform]",
	Short: "List the configured rate tables",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := pricing.NewEngine(ratesPath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		book := engine.Rates()
		if ratesJSON {
			return printJSON(out, models.NewRatesResponse(engine.Currency(), book))
		}

		found := false
		for _, p := range book.Platforms() {
			if len(args) == 1 && string(p.Platform) != args[0] {
				continue
			}
			found = true
			printHeader(out, fmt.Sprintf("%s (%s)", p.Label, p.Platform))
			for _, s := range p.Services {
				labelColor.Fprintf(out, "  %s", book.ServiceLabel(p.Platform, s.Service))
				if s.LongLead {
					warnColor.Fprint(out, "  long lead")
				}
				fmt.Fprintln(out)
				for _, e := range s.Table.Entries() {
					fmt.Fprintf(out, "    %8d  ", e.Quantity)
					priceColor.Fprint(out, utils.FormatTHB(e.Price))
					if e.FreeUnits > 0 {
						fmt.Fprintf(out, "  +%d free", e.FreeUnits)
					}
					fmt.Fprintln(out)
				}
			}
		}
		if !found {
			return fmt.Errorf("unknown platform %q", args[0])
		}
		return nil
	},
}

// hashPasswordCmd prints a bcrypt hash for ADMIN_PASSWORD_HASH
var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Hash an admin password read from stdin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && f == os.Stdin {
			fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		}
		line, err := bufio.NewReader(in).ReadString('\n')
		password := strings.TrimRight(line, "\r\n")
		if password == "" {
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			return errors.New("password must not be empty")
		}

		hash, err := service.HashPassword(password)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	ratesCmd.Flags().BoolVar(&ratesJSON, "json", false, "print the rate tables as JSON")
}
