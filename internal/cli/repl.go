package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. Console
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Users(ctx context.Context) error
	Categories(ctx context.Context) error
	AddCategory(ctx context.Context) error
	DeleteCategory(ctx context.Context, id int64) error
	Posts(ctx context.Context, categoryID int64) error
	AddPost(ctx context.Context) error
	DeletePost(ctx context.Context, id int64) error
	Comments(ctx context.Context, postID int64) error
	AddComment(ctx context.Context, postID int64) error
}

const (
	helpAnonymous = "Available commands: register, login, users, categories, addcategory, delcategory <id>, " +
		"posts [category id], comments <post id>, addcomment <post id>, exit"
	helpLoggedIn = "Available commands: users, categories, addcategory, delcategory <id>, " +
		"posts [category id], addpost, delpost <id>, comments <post id>, addcomment <post id>, logout, exit"
)

// runREPL reads commands from reader until EOF or "exit", dispatching each to a.
// Errors returned by handlers are infrastructure failures; they are printed
// and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "blog %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpAnonymous)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "users":
			cmdErr = a.Users(ctx)

		case "categories":
			cmdErr = a.Categories(ctx)

		case "addcategory":
			cmdErr = a.AddCategory(ctx)

		case "delcategory":
			if id, ok := idArg(w, args, "delcategory <id>"); ok {
				cmdErr = a.DeleteCategory(ctx, id)
			}

		case "posts":
			if len(args) == 0 {
				cmdErr = a.Posts(ctx, 0)
			} else if id, ok := idArg(w, args, "posts [category id]"); ok {
				cmdErr = a.Posts(ctx, id)
			}

		case "addpost":
			cmdErr = a.AddPost(ctx)

		case "delpost":
			if id, ok := idArg(w, args, "delpost <id>"); ok {
				cmdErr = a.DeletePost(ctx, id)
			}

		case "comments":
			if id, ok := idArg(w, args, "comments <post id>"); ok {
				cmdErr = a.Comments(ctx, id)
			}

		case "addcomment":
			if id, ok := idArg(w, args, "addcomment <post id>"); ok {
				cmdErr = a.AddComment(ctx, id)
			}

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", cmdErr)
		}
	}
}

func idArg(w io.Writer, args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		fmt.Fprintln(w, "Usage:", usage)
		return 0, false
	}
	id, err := parseID(args[0])
	if err != nil {
		fmt.Fprintln(w, err)
		return 0, false
	}
	return id, true
}
