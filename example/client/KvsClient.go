package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"kvs"
	"kvs/utils/log"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

var rootCmd = &cobra.Command{
	Use:          "kvs-client",
	Short:        "Read and write keys through the kvs client",
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initLogging()
		if !usesStore(cmd) {
			return nil
		}
		_, err := kvs.GetOrCreate(cmd.Context(),
			kvs.WithHost(viper.GetString("host")),
			kvs.WithPort(viper.GetInt("port")),
			kvs.WithDB(viper.GetInt("db")),
			kvs.WithPassword(viper.GetString("password")),
			kvs.WithLogger(log.Wrap(nil)),
		)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return kvs.Close(cmd.Context())
	},
}

var getCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print the value stored at KEY",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := kvs.GetOrCreate(cmd.Context())
		if err != nil {
			return err
		}
		v, ok, err := client.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s: not found", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var getDictCmd = &cobra.Command{
	Use:   "getdict KEY",
	Short: "Print the JSON object stored at KEY, indented",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := kvs.GetOrCreate(cmd.Context())
		if err != nil {
			return err
		}
		dict, ok, err := client.GetAsDict(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s: not found", args[0])
		}
		out, err := json.MarshalIndent(dict, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Store VALUE at KEY",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := kvs.GetOrCreate(cmd.Context())
		if err != nil {
			return err
		}
		_, err = client.Set(cmd.Context(), args[0], args[1], setTTL)
		return err
	},
}

var setDictCmd = &cobra.Command{
	Use:   "setdict KEY JSON",
	Short: "Store the JSON object JSON at KEY",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var dict map[string]any
		if err := json.Unmarshal([]byte(args[1]), &dict); err != nil {
			return fmt.Errorf("parse %q: %w", args[1], err)
		}
		client, err := kvs.GetOrCreate(cmd.Context())
		if err != nil {
			return err
		}
		_, err = client.SetDict(cmd.Context(), args[0], dict, setTTL)
		return err
	},
}

var delCmd = &cobra.Command{
	Use:   "del KEY",
	Short: "Delete KEY, printing whether it existed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := kvs.GetOrCreate(cmd.Context())
		if err != nil {
			return err
		}
		removed, err := client.Delete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), removed)
		return nil
	},
}

var existsCmd = &cobra.Command{
	Use:   "exists KEY",
	Short: "Print whether KEY exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := kvs.GetOrCreate(cmd.Context())
		if err != nil {
			return err
		}
		found, err := client.Exists(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), found)
		return nil
	},
}

var ttlCmd = &cobra.Command{
	Use:   "ttl KEY",
	Short: "Print the remaining time to live of KEY",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := kvs.GetOrCreate(cmd.Context())
		if err != nil {
			return err
		}
		ttl, ok, err := client.TTL(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		switch {
		case !ok:
			return fmt.Errorf("%s: not found", args[0])
		case ttl == kvs.NoExpiry:
			fmt.Fprintln(cmd.OutOrStdout(), "no expiry")
		default:
			fmt.Fprintln(cmd.OutOrStdout(), ttl)
		}
		return nil
	},
}

var setTTL time.Duration

// storeAnnotation marks the commands that talk to redis. cobra's own help and
// completion commands run without a connection.
const storeAnnotation = "kvs/store"

func usesStore(cmd *cobra.Command) bool {
	_, ok := cmd.Annotations[storeAnnotation]
	return ok
}

func init() {
	configFlags := pflag.NewFlagSet("", pflag.ContinueOnError)
	configFlags.String("host", kvs.DefaultHost, "the redis host")
	configFlags.Int("port", kvs.DefaultPort, "the redis port")
	configFlags.Int("db", 0, "the redis database index")
	configFlags.String("password", "", "the redis password")
	configFlags.String("log-level", "warn", "the console log level")
	configFlags.String("log-file", "", "also write rotated logs to <log-file>.info.log and <log-file>.error.log")
	rootCmd.PersistentFlags().AddFlagSet(configFlags)

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.SetEnvPrefix("kvs")
	viper.AutomaticEnv()
	_ = viper.BindPFlags(configFlags)

	for _, cmd := range []*cobra.Command{setCmd, setDictCmd} {
		cmd.Flags().DurationVar(&setTTL, "ttl", 0, "expire the key after this long (0 keeps it forever)")
	}

	storeCmds := []*cobra.Command{getCmd, getDictCmd, setCmd, setDictCmd, delCmd, existsCmd, ttlCmd}
	for _, cmd := range storeCmds {
		cmd.Annotations = map[string]string{storeAnnotation: ""}
	}
	rootCmd.AddCommand(storeCmds...)
}

func initLogging() {
	if file := viper.GetString("log-file"); file != "" {
		log.InitLogger(file, 10, 3, 7, false)
		return
	}
	level, err := zapcore.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		level = zapcore.WarnLevel
	}
	log.DefaultLogger(level)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
