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

// execIface defines the command surface the REPL dispatches to. The real App
// satisfies it; tests can provide a lightweight stub.
type execIface interface {
	isAdmin() bool
	List(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Type(ctx context.Context, args []string) error
	Price(ctx context.Context, args []string) error
	Clear(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Inquire(ctx context.Context, args []string) error
	Contact(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Reload(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Toggle(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
}

const (
	visitorHelp = "Available commands: (l)ist, search <term>, type <category|all>, price <all|low|medium|high>, clear, show <id>, inquire <id>, contact, reload, login, exit"
	adminHelp   = visitorHelp + "\nAdmin commands: add, edit <id>, toggle <id>, delete <id>, upload <file>, stats, logout"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are not fatal to the loop; handlers
// report them to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("realty %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isAdmin() {
				printlnFn(adminHelp)
			} else {
				printlnFn(visitorHelp)
			}

		case "l", "list":
			_ = a.List(ctx, args)
		case "search":
			_ = a.Search(ctx, args)
		case "type":
			_ = a.Type(ctx, args)
		case "price":
			_ = a.Price(ctx, args)
		case "clear":
			_ = a.Clear(ctx, args)
		case "show":
			_ = a.Show(ctx, args)
		case "inquire":
			_ = a.Inquire(ctx, args)
		case "contact":
			_ = a.Contact(ctx, args)
		case "login":
			_ = a.Login(ctx, args)
		case "logout":
			_ = a.Logout(ctx, args)
		case "reload":
			_ = a.Reload(ctx, args)
		case "add":
			_ = a.Add(ctx, args)
		case "edit":
			_ = a.Edit(ctx, args)
		case "toggle":
			_ = a.Toggle(ctx, args)
		case "delete":
			_ = a.Delete(ctx, args)
		case "stats":
			_ = a.Stats(ctx, args)
		case "upload":
			_ = a.Upload(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
