package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oilsim/oilspill/video"
)

// videoCmd represents the video command
var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Assemble rendered frames into a video",
	Long: `
Assembles the PNG frames written during a run into a video file using
ffmpeg, which must be available on PATH.

oilspill video -d tmp -o spill.mp4`,
	Run: func(cmd *cobra.Command, args []string) {
		frameDir, _ := cmd.Flags().GetString("frameDir")
		output, _ := cmd.Flags().GetString("output")
		fps, _ := cmd.Flags().GetInt("fps")
		if err := video.Assemble(frameDir, output, fps); err != nil {
			fmt.Printf("error: %s\n", err)
			os.Exit(1)
		}
		fmt.Println("video saved as", output)
	},
}

func init() {
	rootCmd.AddCommand(videoCmd)
	videoCmd.Flags().StringP("frameDir", "d", "tmp", "directory holding the rendered frames")
	videoCmd.Flags().StringP("output", "o", "video.mp4", "output video file")
	videoCmd.Flags().Int("fps", 10, "frames per second")
}
