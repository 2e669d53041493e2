package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "fill":
		fillCmd(apiURL, args)
	case "amen":
		amenCmd(apiURL, args)
	case "coverage":
		coverageCmd(apiURL)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Watch Simulator - Development tool for seeding the prayer chain

USAGE:
  simulator <command> [options]

COMMANDS:
  fill      Register fake intercessors, claim watch slots, and post prayers
  amen      Register a fake user and amen every post on the wall
  coverage  Print the current wall coverage
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8080)

EXAMPLES:
  # Fill 12 slots with fake intercessors, each posting to the wall
  simulator fill --count=12

  # Amen everything currently on the wall
  simulator amen`)
}

var locations = []string{
	"Nairobi", "Lagos", "Accra", "Kampala", "London", "Houston", "Manila",
}

var samplePrayers = []string{
	"Standing in the gap for our city this hour.",
	"Praying for open doors for the gospel.",
	"Lord, strengthen every weary intercessor tonight.",
	"Believing for restoration in our families.",
	"Covering the next watch in prayer.",
}

func fillCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("fill", flag.ExitOnError)
	count := fs.Int("count", 12, "Number of fake intercessors to create (max 24)")
	fs.Parse(args)

	if *count < 1 || *count > 24 {
		fmt.Println("Error: --count must be between 1 and 24")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)

	fmt.Println("=== Watch Simulator: Fill ===")
	fmt.Println()
	fmt.Printf("Registering %d intercessors:\n", *count)

	hours := rand.Perm(24)[:*count]

	for i := 0; i < *count; i++ {
		suffix := rand.Intn(100000)
		email := fmt.Sprintf("intercessor%d@sim.example", suffix)
		displayName := fmt.Sprintf("Intercessor %d", suffix)

		user, token, err := client.RegisterUser(email, displayName, locations[i%len(locations)])
		if err != nil {
			fmt.Printf("  [%d/%d] FAILED to register: %v\n", i+1, *count, err)
			continue
		}

		result, err := client.ClaimSlot(token, hours[i])
		if err != nil {
			fmt.Printf("  [%d/%d] %s FAILED to claim slot %d: %v\n", i+1, *count, user.DisplayName, hours[i], err)
			continue
		}

		if _, err := client.PostPrayer(token, samplePrayers[i%len(samplePrayers)]); err != nil {
			fmt.Printf("  Warning: %s failed to post: %v\n", user.DisplayName, err)
		}

		if err := client.Heartbeat(token); err != nil {
			fmt.Printf("  Warning: heartbeat failed for %s: %v\n", user.DisplayName, err)
		}

		status := "claimed"
		if !result.Claimed {
			status = result.Notice
		}
		fmt.Printf("  [%d/%d] %s -> slot %d (%s)\n", i+1, *count, user.DisplayName, hours[i], status)
	}

	coverage, err := client.Coverage()
	if err != nil {
		fmt.Printf("\nFailed to read coverage: %v\n", err)
		return
	}
	fmt.Printf("\nWall coverage: %d/%d slots filled\n", coverage.Occupied, coverage.Total)
}

func amenCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("amen", flag.ExitOnError)
	fs.Parse(args)

	client := NewAPIClient(apiURL)

	suffix := rand.Intn(100000)
	_, token, err := client.RegisterUser(
		fmt.Sprintf("amen%d@sim.example", suffix),
		fmt.Sprintf("Agreeing Saint %d", suffix),
		"",
	)
	if err != nil {
		fmt.Printf("Failed to register: %v\n", err)
		os.Exit(1)
	}

	ids, err := client.ListPrayers()
	if err != nil {
		fmt.Printf("Failed to list prayers: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Saying amen to %d posts...\n", len(ids))
	for _, id := range ids {
		if err := client.Amen(token, id); err != nil {
			fmt.Printf("  FAILED on %s: %v\n", id, err)
		}
	}
	fmt.Println("Done.")
}

func coverageCmd(apiURL string) {
	client := NewAPIClient(apiURL)

	coverage, err := client.Coverage()
	if err != nil {
		fmt.Printf("Failed to read coverage: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wall coverage: %d/%d slots filled\n", coverage.Occupied, coverage.Total)
}
