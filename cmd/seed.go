package cmd

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "flowstate.app/flowstate-api/internal/configs"
	"flowstate.app/flowstate-api/internal/storage"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Reset the tasks file with sample data",
	Long:  "Overwrites the configured tasks file with the demo collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		store := storage.NewStore(cfg.DataFile, true)
		tasks := storage.SampleTasks(time.Now())
		if err := store.Save(tasks); err != nil {
			return err
		}

		log.Printf("wrote %d sample tasks to %s", len(tasks), store.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
