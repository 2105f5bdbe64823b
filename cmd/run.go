package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oilsim/oilspill/config"
	"github.com/oilsim/oilspill/mesh"
	"github.com/oilsim/oilspill/plotting"
	"github.com/oilsim/oilspill/simulation"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one or more simulations from input files",
	Long: `
Runs the oil spill simulation for each given input file. The -c argument
accepts either a single TOML/YAML input file or a directory, in which case
every *.toml, *.yaml and *.yml file inside it is run in sequence.

oilspill run -c input.toml`,
	Run: func(cmd *cobra.Command, args []string) {
		inputPath, _ := cmd.Flags().GetString("input")
		doProfile, _ := cmd.Flags().GetBool("profile")
		if doProfile {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		configs, err := discoverConfigs(inputPath)
		if err != nil {
			fmt.Printf("error: %s\n", err)
			os.Exit(1)
		}
		for _, cfgPath := range configs {
			if err = runOne(cfgPath); err != nil {
				fmt.Printf("error: %s: %s\n", cfgPath, err)
				os.Exit(1)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("input", "c", "input.toml", "input file or directory of input files")
	runCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
}

// discoverConfigs expands a path into the list of input files to run.
func discoverConfigs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	var configs []string
	for _, pattern := range []string{"*.toml", "*.yaml", "*.yml"} {
		matches, _ := filepath.Glob(filepath.Join(path, pattern))
		configs = append(configs, matches...)
	}
	if len(configs) == 0 {
		return nil, fmt.Errorf("no input files found in %s", path)
	}
	sort.Strings(configs)
	return configs, nil
}

func runOne(cfgPath string) error {
	params, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	log, logFile, err := setupLogger(params.LogName)
	if err != nil {
		return err
	}
	defer logFile.Close()
	params.Print()

	log.WithFields(logrus.Fields{
		"meshFile": params.MeshFile,
		"dt":       params.Dt,
		"tEnd":     params.TEnd,
	}).Info("starting run")

	msh, err := mesh.ReadGmshFile(params.MeshFile)
	if err != nil {
		return err
	}
	msh.ComputeNeighbors()
	log.WithFields(logrus.Fields{
		"points":    len(msh.Points),
		"cells":     len(msh.Cells),
		"triangles": msh.NumTriangles(),
	}).Info("mesh ready")

	sim := simulation.NewSimulation(msh, params.Dt)
	sim.Workers = params.Workers

	var snap simulation.SnapshotFunc
	if params.WriteFrequency > 0 {
		if err = os.MkdirAll(params.OutputDir, 0o755); err != nil {
			return err
		}
		renderer := &plotting.Renderer{
			OutputDir: params.OutputDir,
			UMin:      0,
			UMax:      1, // the Gaussian initial condition peaks at 1
		}
		if fg := params.FishingGrounds; fg != nil {
			renderer.Region = &simulation.Region{
				XMin: fg[0][0], XMax: fg[0][1],
				YMin: fg[1][0], YMax: fg[1][1],
			}
		}
		snap = renderer.Snapshot
	}

	if err = sim.Run(params.TEnd, params.WriteFrequency, snap); err != nil {
		return err
	}
	log.WithField("mass", sim.TotalMass()).Info("run finished")

	if fg := params.FishingGrounds; fg != nil {
		sim.FindRegionCells(simulation.Region{
			XMin: fg[0][0], XMax: fg[0][1],
			YMin: fg[1][0], YMax: fg[1][1],
		})
		log.WithField("oil", sim.RegionIntegral()).Info("oil in fishing grounds")
	}
	return nil
}

// setupLogger writes structured logs to <logName>.log and mirrors them to
// stderr. The caller owns the returned file and closes it when the run is
// done.
func setupLogger(logName string) (*logrus.Logger, *os.File, error) {
	log := logrus.New()
	f, err := os.Create(logName + ".log")
	if err != nil {
		return nil, nil, err
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log, f, nil
}
