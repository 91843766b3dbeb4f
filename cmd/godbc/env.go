package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "godbc"

// checkEnvironmentVariables sets every flag not given on the command line
// from GODBC_<COMMAND>_<FLAG>, falling back to GODBC_<FLAG>.
func checkEnvironmentVariables(cmd *cobra.Command) error {
	global := viper.New()
	global.SetEnvPrefix(envPrefix)
	global.AutomaticEnv()

	local := viper.New()
	local.SetEnvPrefix(envPrefix + "_" + cmd.Name())
	local.AutomaticEnv()

	var errs []string
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		for _, v := range []*viper.Viper{local, global} {
			if !v.IsSet(key) {
				continue
			}
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(key))); err != nil {
				errs = append(errs, err.Error())
			}
			return
		}
	})

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("error mapping environment variables to command flags: %s", strings.Join(errs, "; "))
}
