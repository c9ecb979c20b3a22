// tripflow-chat is a terminal client for the tripflow backend. It drives one
// conversation session and prints the itinerary when planning completes.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"tripflow/internal/domain"
	"tripflow/internal/observability"
	"tripflow/internal/session"
	"tripflow/internal/transport"
)

func main() {
	_ = godotenv.Load()

	serverURL := flag.String("server", envOr("TRIPFLOW_SERVER_URL", "http://localhost:8080"), "backend base URL")
	flag.Parse()

	logger := observability.NewLogger(observability.Config{Level: "warn", Format: "text", Output: os.Stderr})

	client := transport.NewClient(*serverURL, transport.WithLogger(logger))
	ctrl := session.NewController(client,
		session.WithLogger(logger),
		session.WithPublisher(printItinerary),
	)
	defer ctrl.Close()

	ctx := context.Background()
	if err := ctrl.Begin(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "could not reach %s: %v\n", *serverURL, err)
	}
	printLastReply(ctrl)
	fmt.Println("(type 'quit' to exit)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			break
		}

		err := ctrl.Send(ctx, line)
		switch {
		case errors.Is(err, session.ErrEmptyUtterance):
			continue
		case errors.Is(err, session.ErrTurnInFlight):
			fmt.Println("(still waiting for the previous reply)")
			continue
		}
		printLastReply(ctrl)
	}
	fmt.Println("Safe travels!")
}

func printLastReply(ctrl *session.Controller) {
	transcript := ctrl.Transcript()
	if len(transcript) == 0 {
		return
	}
	last := transcript[len(transcript)-1]
	if last.Sender == domain.SenderBot {
		fmt.Printf("\n%s\n\n", last.Text)
	}
}

func printItinerary(it domain.Itinerary) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("YOUR ITINERARY")
	fmt.Println(strings.Repeat("=", 60))
	if it.Summary != "" {
		fmt.Println(it.Summary)
	}
	if it.WeatherSummary != "" {
		fmt.Println(it.WeatherSummary)
	}
	for _, day := range it.Days {
		fmt.Printf("\nDay %d", day.DayNumber)
		if day.WeatherOverview != nil {
			fmt.Printf("  (%s, %.0f°C)", day.WeatherOverview.Condition, day.WeatherOverview.Temperature)
		}
		fmt.Println()
		for _, act := range day.Activities {
			fmt.Printf("  %s  %s", act.Time, act.Name)
			if act.Location != "" {
				fmt.Printf(" - %s", act.Location)
			}
			if act.EstimatedCost != "" {
				fmt.Printf(" (%s)", act.EstimatedCost)
			}
			fmt.Println()
		}
	}
	if len(it.Tips) > 0 {
		fmt.Println("\nTips:")
		for _, tip := range it.Tips {
			fmt.Printf("  - %s\n", tip)
		}
	}
	fmt.Println(strings.Repeat("=", 60))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
