package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"timer_diary/internal/client"
	"timer_diary/internal/domain"
	"timer_diary/internal/timer"

	"github.com/spf13/cobra"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Run a countdown session and log it when finished",
	Long: `Runs a countdown for the given duration. While the timer runs:

  p          pause
  r          resume
  c <index>  toggle a checklist item
  f          finish the session and submit it
  q          abandon the session without logging`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hours, _ := cmd.Flags().GetInt("hours")
		minutes, _ := cmd.Flags().GetInt("minutes")
		seconds, _ := cmd.Flags().GetInt("seconds")
		title, _ := cmd.Flags().GetString("title")
		desc, _ := cmd.Flags().GetString("desc")
		taskTexts, _ := cmd.Flags().GetStringArray("task")
		date, _ := cmd.Flags().GetString("date")
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		c := newClient()
		var submitErr error
		session := timer.NewSession(func(duration, title, description string, tasks []domain.Task) {
			_, submitErr = c.CreateLog(context.Background(), client.CreateLogParams{
				Date:            date,
				SessionDuration: duration,
				Description:     description,
				Title:           title,
				Tasks:           tasks,
			})
		})

		if err := session.Configure(hours, minutes, seconds, title, desc); err != nil {
			return err
		}
		for _, t := range taskTexts {
			if err := session.AddTask(t); err != nil {
				return err
			}
		}
		if err := session.Start(); err != nil {
			return err
		}

		input := make(chan string)
		go func() {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				input <- strings.TrimSpace(scanner.Text())
			}
			close(input)
		}()

		tick := time.NewTicker(time.Second)
		defer tick.Stop()

		fmt.Printf("%s  %s\n", session.Remaining(), session.State())
		notified := false
		for {
			select {
			case <-tick.C:
				session.Tick()
				fmt.Printf("\r%s  %-11s", session.Remaining(), session.State())
				if session.Expired() && !notified {
					notified = true
					fmt.Println("\ntime's up! press f to finish and log the session")
				}
			case line, ok := <-input:
				if !ok {
					return nil
				}
				switch {
				case line == "p":
					session.Pause()
				case line == "r":
					session.Resume()
				case line == "f":
					duration, err := session.Finish()
					if err != nil {
						return err
					}
					if submitErr != nil {
						return fmt.Errorf("session lasted %s but could not be logged: %w", duration, submitErr)
					}
					fmt.Printf("logged %s under %s\n", duration, date)
					return nil
				case line == "q":
					fmt.Println("session abandoned")
					return nil
				case strings.HasPrefix(line, "c "):
					index, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "c ")))
					if err != nil {
						fmt.Println("usage: c <task-index>")
						continue
					}
					if err := session.CheckTask(index); err != nil {
						fmt.Println(err)
					}
				}
			}
		}
	},
}

func init() {
	timerCmd.Flags().IntP("hours", "H", 0, "hours")
	timerCmd.Flags().IntP("minutes", "M", 0, "minutes")
	timerCmd.Flags().IntP("seconds", "S", 0, "seconds")
	timerCmd.Flags().String("title", "", "activity title")
	timerCmd.Flags().String("desc", "", "what are you going to do?")
	timerCmd.Flags().StringArray("task", nil, "checklist item (repeatable)")
	timerCmd.Flags().String("date", "", "date to log under (default today)")
}
