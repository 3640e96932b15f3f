package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"timer_diary/internal/client"

	"github.com/spf13/cobra"
)

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List all diary dates, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		dates, err := newClient().Dates(context.Background())
		if err != nil {
			return err
		}
		if len(dates) == 0 {
			fmt.Println("no entries yet")
			return nil
		}
		for _, d := range dates {
			fmt.Println(d.Date)
		}
		return nil
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show log entries for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")
		if date == "" {
			return errors.New("--date is required (YYYY-MM-DD)")
		}

		logs, err := newClient().Logs(context.Background(), date)
		if err != nil {
			return err
		}
		if len(logs) == 0 {
			fmt.Printf("no entries for %s\n", date)
			return nil
		}

		for _, l := range logs {
			fmt.Printf("#%d  %s  (%s)\n", l.ID, l.Title, l.SessionDuration)
			if l.Description != "" {
				fmt.Printf("    %s\n", l.Description)
			}
			for i, t := range l.Tasks {
				mark := " "
				if t.Checked {
					mark = "x"
				}
				fmt.Printf("    [%s] %d. %s\n", mark, i, t.Text)
			}
		}
		return nil
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle [log-id]",
	Short: "Toggle a checklist item on a log entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid log id: %s", args[0])
		}
		date, _ := cmd.Flags().GetString("date")
		if date == "" {
			return errors.New("--date is required (YYYY-MM-DD)")
		}
		index, _ := cmd.Flags().GetInt("task")

		if err := newClient().ToggleTask(context.Background(), id, date, index); err != nil {
			if errors.Is(err, client.ErrNotFound) {
				return fmt.Errorf("log %d not found on %s", id, date)
			}
			return err
		}
		fmt.Println("toggled")
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [log-id]",
	Short: "Edit the description of a log entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid log id: %s", args[0])
		}
		date, _ := cmd.Flags().GetString("date")
		if date == "" {
			return errors.New("--date is required (YYYY-MM-DD)")
		}
		desc, _ := cmd.Flags().GetString("desc")

		err = newClient().UpdateLog(context.Background(), id, date, client.UpdateLogParams{Description: &desc})
		if err != nil {
			if errors.Is(err, client.ErrNotFound) {
				return fmt.Errorf("log %d not found", id)
			}
			return err
		}
		fmt.Println("updated")
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [log-id]",
	Short: "Delete a log entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid log id: %s", args[0])
		}
		date, _ := cmd.Flags().GetString("date")
		if date == "" {
			return errors.New("--date is required (YYYY-MM-DD)")
		}

		err = newClient().DeleteLog(context.Background(), id, date)
		if err != nil {
			if errors.Is(err, client.ErrNotFound) {
				return fmt.Errorf("log %d not found", id)
			}
			return err
		}
		fmt.Println("deleted")
		return nil
	},
}

func init() {
	logsCmd.Flags().String("date", "", "date to browse (YYYY-MM-DD)")

	toggleCmd.Flags().String("date", "", "date the entry belongs to")
	toggleCmd.Flags().Int("task", 0, "checklist item index")

	editCmd.Flags().String("date", "", "date the entry belongs to")
	editCmd.Flags().String("desc", "", "new description")

	deleteCmd.Flags().String("date", "", "date the entry belongs to")
}
