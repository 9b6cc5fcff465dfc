package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const complete = `#! /bin/bash

_concord_autocomplete() {
    local cur opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"

    # the cli lists the commands and flags valid at the cursor
    opts=$( "${COMP_WORDS[@]:0:$COMP_CWORD}" --generate-bash-completion 2>/dev/null )

    if [ $? -eq 0 ]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
    fi
    return 0
}

complete -o bashdefault -o default -F _concord_autocomplete concord
`

func bashCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "bash",
		Usage: "print the bash completion script, source it with: source <(concord bash)",
		Action: func(c *cli.Context) error {
			_, err := fmt.Fprint(ui.Out, complete)
			return err
		},
	}
}
