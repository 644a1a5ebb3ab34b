package main

import (
	"fmt"
	"os"
	"strconv"

	"todoview-api/internal/migration"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		printUsage()
		return 1
	}

	command := os.Args[1]

	migrator, err := migration.NewFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to create migrator: %v\n", err)
		return 1
	}
	defer migrator.Close()

	switch command {
	case "up":
		if err := migrator.Up(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println("Migrations applied successfully")

	case "down":
		if err := migrator.Down(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println("Rolled back last migration")

	case "steps":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Error: steps requires a count argument")
			return 1
		}
		n, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid step count %q\n", os.Args[2])
			return 1
		}
		if err := migrator.Steps(n); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Ran %d migration steps\n", n)

	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Current version: %d (dirty: %v)\n", version, dirty)

	case "force":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Error: force requires a version argument")
			return 1
		}
		version, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid version %q\n", os.Args[2])
			return 1
		}
		if err := migrator.Force(version); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Forced migration version to %d\n", version)

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", command)
		printUsage()
		return 1
	}

	return 0
}

func printUsage() {
	fmt.Println(`Usage: migrate <command> [args]

Commands:
  up              Apply all pending migrations
  down            Roll back the last migration
  steps <n>       Run n migrations (negative rolls back)
  version         Show current migration version
  force <version> Set migration version without running migrations`)
}
