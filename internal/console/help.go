package console

import (
	"fmt"
	"io"
	"strings"
)

// helpTopics holds the usage text printed by `help <command>`, keyed by
// command name.
var helpTopics = map[string]string{
	"EOF":     "EOF signal to exit the program",
	"quit":    "Quit command to exit the program",
	"help":    "List available commands with \"help\" or detailed help with \"help cmd\".",
	"create":  "Create a new instance of a class, save it, and print its id.\n        Usage: create <class_name>",
	"show":    "Print the string representation of an instance.\n        Usage: show <class_name> <id>",
	"destroy": "Delete an instance based on class name and id.\n        Usage: destroy <class_name> <id>",
	"all":     "Print the string representation of all instances, optionally of one class.\n        Usage: all [class_name]",
	"update":  "Add or update an attribute of an instance and save it.\n        Usage: update <class_name> <id> <attribute_name> \"<attribute_value>\"",
	"count":   "Print the number of instances of a class.\n        Usage: count <class_name> or <class_name>.count()",
}

// helpOrder is the listing order, matching the interactive listing's
// sorted layout.
var helpOrder = []string{"EOF", "all", "count", "create", "destroy", "help", "quit", "show", "update"}

const helpHeader = "Documented commands (type help <topic>):"

func printHelp(w io.Writer, topic string) {
	if topic != "" {
		text, ok := helpTopics[topic]
		if !ok {
			fmt.Fprintf(w, "*** No help on %s\n", topic)
			return
		}
		fmt.Fprintln(w, text)
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, helpHeader)
	fmt.Fprintln(w, strings.Repeat("=", len(helpHeader)))
	fmt.Fprintln(w, strings.Join(helpOrder, "  "))
	fmt.Fprintln(w)
}
