package internal

import (
	"fmt"
	"os"
	"os/signal"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kr/pretty"
	colorful "github.com/lucasb-eyer/go-colorful"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/ngerakines/hardwareops"
	"github.com/ngerakines/hardwareops/client"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
)

var RootCmd = &cobra.Command{
	Use:   "hardwareops",
	Short: "hardwareops relays status information to your device's display hardware.",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of hardwareops",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("hardwareops v1.0.0 -- HEAD")
	},
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the profile applier daemon",
	Run: func(cmd *cobra.Command, args []string) {
		manager := client.GetInstance(registry())

		profileManager := hardwareops.NewProfileManager()
		if err := viper.UnmarshalKey("profiles", &profileManager.Profiles); err != nil {
			log.WithError(err).Fatal("Could not read profiles.")
		}
		if err := viper.UnmarshalKey("triggers", &profileManager.Triggers); err != nil {
			log.WithError(err).Fatal("Could not read triggers.")
		}
		profileManager.OnStart = viper.GetString("profile.onstart")
		profileManager.OnStop = viper.GetString("profile.onstop")
		if err := profileManager.Init(); err != nil {
			log.WithError(err).Fatal("Could not initialize profiles.")
		}
		if err := profileManager.StartAll(manager); err != nil {
			log.WithError(err).Error("Could not apply the startup profile.")
		}

		stop := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(2)

		statusFerry := make(chan hardwareops.StatusMap)

		go func() {
			if err := hardwareops.NewPoller(stop, &wg, statusFerry); err != nil {
				log.WithError(err).Error("Error shutting down status poller.")
			} else {
				log.Info("status poller stopped.")
			}
		}()

		go func() {
			if err := hardwareops.NewApplier(stop, &wg, statusFerry, profileManager, manager); err != nil {
				log.WithError(err).Error("Error shutting down profile applier.")
			} else {
				log.Info("profile applier stopped.")
			}
		}()

		if viper.GetBool("monitor.enabled") {
			wg.Add(1)
			go func() {
				if err := hardwareops.NewMonitor(stop, &wg, statusFerry, manager); err != nil {
					log.WithError(err).Error("Error shutting down hardware monitor.")
				} else {
					log.Info("hardware monitor stopped.")
				}
			}()
		}

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, os.Kill)
		<-c
		close(stop)
		wg.Wait()

		if err := profileManager.StopAll(manager); err != nil {
			log.WithError(err).Error("Could not apply the shutdown profile.")
		}
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the hardware capabilities of the connected device",
	Run: func(cmd *cobra.Command, args []string) {
		manager := client.GetInstance(registry())

		features := manager.GetSupportedFeatures()
		info := struct {
			Features     string
			DisplayModes []client.DisplayMode
			CurrentMode  *client.DisplayMode
			Calibration  []int
			ColorBalance client.Range[int]
			Picture      *client.HSIC
		}{
			Features:     fmt.Sprintf("0x%x", features),
			DisplayModes: manager.GetDisplayModes(),
			CurrentMode:  manager.GetCurrentDisplayMode(),
			Calibration:  manager.GetDisplayColorCalibration(),
			ColorBalance: manager.GetColorBalanceRange(),
			Picture:      manager.GetPictureAdjustment(),
		}
		pretty.Println(info)
	},
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find hardware service hosts on the local network",
	Run: func(cmd *cobra.Command, args []string) {
		addresses, err := client.Discover(viper.GetDuration("service.timeout"))
		if err != nil {
			log.WithError(err).Fatal("Discovery failed.")
		}
		for _, address := range addresses {
			fmt.Println(address)
		}
	},
}

var setCmd = &cobra.Command{
	Use:   "set [grayscale|colorbalance|calibration|mode] value",
	Short: "Apply a single hardware setting",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		manager := client.GetInstance(registry())

		switch args[0] {
		case "grayscale":
			if !manager.SetGrayscale(args[1] == "on") {
				log.Fatal("Grayscale was not accepted.")
			}
		case "colorbalance":
			value, err := strconv.Atoi(args[1])
			if err != nil {
				log.WithError(err).Fatal("Color balance must be a number.")
			}
			if !manager.SetColorBalance(value) {
				log.Fatal("Color balance was not accepted.")
			}
		case "calibration":
			color, err := colorful.Hex(args[1])
			if err != nil {
				log.WithError(err).Fatal("Calibration must be a hex color.")
			}
			r, g, b := color.Clamped().RGB255()
			if !manager.SetDisplayColorCalibration([]int{int(r), int(g), int(b)}) {
				log.Fatal("Color calibration was not accepted.")
			}
		case "mode":
			for _, mode := range manager.GetDisplayModes() {
				if mode.Name == args[1] {
					if !manager.SetDisplayMode(mode, false) {
						log.Fatal("Display mode was not accepted.")
					}
					return
				}
			}
			log.WithField("mode", args[1]).Fatal("Unknown display mode.")
		default:
			log.WithField("setting", args[0]).Fatal("Unknown setting.")
		}
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default display mode and calibration",
	Run: func(cmd *cobra.Command, args []string) {
		manager := client.GetInstance(registry())
		if err := hardwareops.ResetAll(manager); err != nil {
			log.WithError(err).Fatal("Reset failed.")
		}
	},
}

func registry() client.ServiceRegistry {
	if address := viper.GetString("service.address"); address != "" {
		return client.NewStaticRegistry(address)
	}
	return client.NewRegistry(viper.GetDuration("service.timeout"))
}

func init() {
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(serverCmd)
	RootCmd.AddCommand(infoCmd)
	RootCmd.AddCommand(discoverCmd)
	RootCmd.AddCommand(setCmd)
	RootCmd.AddCommand(resetCmd)

	serverCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is ./hardwareops.yaml)")

	viper.SetDefault("status.location", "http://localhost:8080/")
	viper.SetDefault("status.interval", 3)
	viper.SetDefault("monitor.enabled", false)
	viper.SetDefault("monitor.interval", 30)
	viper.SetDefault("service.address", "")
	viper.SetDefault("service.timeout", 5*time.Second)
	viper.SetDefault("validate.status", false)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("HARDWAREOPS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(path.Join(home, ".hardwareops"))
		viper.AddConfigPath("/etc/hardwareops/")
		viper.SetConfigName("hardwareops")
	}

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("Can't read config:", err)
	}
}
