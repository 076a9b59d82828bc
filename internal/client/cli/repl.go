package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	BiometricLogin(ctx context.Context) error
	Enroll(ctx context.Context) error
	Ballot(ctx context.Context) error
	Select(ctx context.Context, candidateID string) error
	Vote(ctx context.Context) error
	Previous(ctx context.Context) error
	Next(ctx context.Context) error
	Summary(ctx context.Context) error
	Finish(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help           show available commands
//	  - login          log in with a student id
//	  - bio            log in with the device PIN
//	  - enroll         set the device PIN
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - ballot         show the open position
//	  - select <id>    choose a candidate
//	  - vote           submit the choice for the open position
//	  - prev | next    move between visited positions
//	  - summary        show all selections
//	  - finish         complete voting and log out
//	  - logout         log out
//	  - exit | quit    leave the program
//
// Errors returned by handlers are reported and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("vote (%s)> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		eof := err != nil

		parts := strings.Fields(line)
		if len(parts) == 0 {
			if eof {
				return
			}
			continue
		}
		cmd := parts[0]

		if dispatch(ctx, a, cmd, parts[1:]) || eof {
			return
		}
	}
}

// dispatch runs one command and reports whether the REPL should stop.
func dispatch(ctx context.Context, a execIface, cmd string, args []string) bool {
	switch cmd {
	case "exit", "quit":
		printlnFn("Bye!")
		return true
	case "help":
		if a.isLoggedIn() {
			printlnFn("Available commands: ballot, select <id>, vote, prev, next, summary, finish, logout, exit")
		} else {
			printlnFn("Available commands: login, bio, enroll, exit")
		}
		return false
	}

	var err error
	switch cmd {
	case "login":
		err = a.Login(ctx)
	case "bio":
		err = a.BiometricLogin(ctx)
	case "enroll":
		err = a.Enroll(ctx)

	case "ballot", "select", "vote", "prev", "next", "summary", "finish", "logout":
		if !a.isLoggedIn() {
			printlnFn("Please log in first.")
			return false
		}
		err = dispatchBallot(ctx, a, cmd, args)

	default:
		printlnFn("Unknown command:", cmd)
		return false
	}

	if err != nil {
		printlnFn("Error:", describe(err))
	}
	return false
}

func dispatchBallot(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "ballot":
		return a.Ballot(ctx)
	case "select":
		if len(args) == 0 {
			printlnFn("Usage: select <candidateId>")
			return nil
		}
		return a.Select(ctx, args[0])
	case "vote":
		return a.Vote(ctx)
	case "prev":
		return a.Previous(ctx)
	case "next":
		return a.Next(ctx)
	case "summary":
		return a.Summary(ctx)
	case "finish":
		return a.Finish(ctx)
	default:
		return a.Logout(ctx)
	}
}
