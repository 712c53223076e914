// Package cli provides the interactive journal command-line client.
//
// It wires configuration, the local stores, the application services, the
// sync coordinator and an interactive REPL. Typical flow: unlock the journal
// with its passphrase, start the connectivity watcher and the coordinator
// in the background, then execute user commands until exit.
//
// Commands:
//   - journal add | list [child] | show <id> | edit <id> | delete <id>
//   - food add | list [child] | move <id> <category> | image <id> <file> | delete <id>
//   - report generate <type> [child] | list [child] | show <id> | delete <id>
//   - transcribe <file> <field>
//   - sync, status
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
