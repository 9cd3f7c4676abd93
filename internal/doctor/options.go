package doctor

import "fmt"

// Command is one of the operations the doctor can run.
type Command int

const (
	CommandCall Command = iota
	CommandDB
	CommandHelp
	CommandID
	CommandLinkLegacyInfo
	CommandLinkLib
	CommandLinkJS
	CommandManifest
	CommandPath
	CommandRenameDirectory
	CommandVerifyPackageJSON
	CommandVerifyVersion
)

type option struct {
	name        string
	flags       []string
	description string
}

// options is indexed by Command and defines the help order.
var options = [...]option{
	CommandCall: {
		name:        "call",
		flags:       []string{"-c", "--call"},
		description: "Call the doctor: an automatic process that runs a series of checks ensuring that the plugin is working with the current Spacialist",
	},
	CommandDB: {
		name:        "db",
		flags:       []string{"-d", "--db"},
		description: "Check the database connection",
	},
	CommandHelp: {
		name:        "help",
		flags:       []string{"-h", "--help"},
		description: "Display this help message",
	},
	CommandID: {
		name:        "id",
		flags:       []string{"-i", "--id"},
		description: "Get the plugin id",
	},
	CommandLinkLegacyInfo: {
		name:        "link-legacy-info",
		flags:       []string{"-li", "--link-legacy-info"},
		description: "Creates a symlink from the info file to the legacy info location",
	},
	CommandLinkLib: {
		name:        "link-lib",
		flags:       []string{"-l", "--link-lib"},
		description: "Creates symlinks to the lib folder",
	},
	CommandLinkJS: {
		name:        "link-js",
		flags:       []string{"-L", "--link-js"},
		description: "Creates symlinks to the js folder",
	},
	CommandManifest: {
		name:        "manifest",
		flags:       []string{"-m", "--manifest"},
		description: "Checks every location of the 'manifest.xml' file",
	},
	CommandPath: {
		name:        "path",
		flags:       []string{"-p", "--path"},
		description: "Checks that the plugin lives in a Spacialist plugin directory",
	},
	CommandRenameDirectory: {
		name:        "rename-directory",
		flags:       []string{"-r", "--rename-directory"},
		description: "Checks that the plugin directory is named after the plugin name in package.json",
	},
	CommandVerifyPackageJSON: {
		name:        "verify-package-json",
		flags:       []string{"-v", "--verify-package-json"},
		description: "Verifies the `package.json` file",
	},
	CommandVerifyVersion: {
		name:        "verify-version",
		flags:       []string{"-V", "--verify-version"},
		description: "Verifies the version of the plugin",
	},
}

// Commands returns every command in registry order.
func Commands() []Command {
	cmds := make([]Command, len(options))
	for i := range options {
		cmds[i] = Command(i)
	}
	return cmds
}

func (c Command) valid() bool {
	return c >= 0 && int(c) < len(options)
}

// Name returns the long name of the command, without dashes.
func (c Command) Name() string {
	if !c.valid() {
		return ""
	}
	return options[c].name
}

// Flags returns the accepted spellings, short form first.
func (c Command) Flags() []string {
	if !c.valid() {
		return nil
	}
	return options[c].flags
}

// Description returns the help text of the command.
func (c Command) Description() string {
	if !c.valid() {
		return ""
	}
	return options[c].description
}

func (c Command) String() string {
	if !c.valid() {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return options[c].name
}

// LookupFlag resolves an exact flag spelling to its command.
func LookupFlag(token string) (Command, bool) {
	for i, opt := range options {
		for _, flag := range opt.flags {
			if flag == token {
				return Command(i), true
			}
		}
	}
	return 0, false
}

// allFlags returns every accepted spelling in registry order.
func allFlags() []string {
	var flags []string
	for _, opt := range options {
		flags = append(flags, opt.flags...)
	}
	return flags
}
