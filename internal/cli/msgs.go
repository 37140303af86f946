package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Rename, move and delete files by editing their paths"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgConfigShort     = "Print the effective configuration"

	// Status messages
	MsgNoFiles      = "No files selected"
	MsgNoChanges    = "Nothing to do."
	MsgDryRunNotice = "DRY RUN MODE - No changes were made"

	// Error messages
	MsgErrReadBuffer = "failed to read buffer file %s"
	MsgErrWriteOut   = "failed to write output"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun      = "Show what would change without touching any file"
	MsgFlagMaxDepth    = "Descend at most N directory levels; deeper directories are listed themselves (-1 for no limit)"
	MsgFlagExclude     = "Skip paths matching this glob (repeatable, added to discovery.exclude)"
	MsgFlagYes         = "Answer yes to every confirmation"
	MsgFlagBuffer      = "Apply an already edited buffer from FILE (- for stdin) instead of opening the editor"
	MsgFlagPrintBuffer = "Print the enumerated buffer and exit"
	MsgFlagFormat      = "Output format for the plan summary: text, json or yaml"
	MsgFlagColor       = "Colour output: auto, always or never"
	MsgFlagConfig      = "Read configuration from FILE in addition to the user config"
	MsgFlagNoPrune     = "Keep directories that become empty"
	MsgFlagDefaults    = "Print the commented default configuration instead"
)

// MsgRootLong is the long description of the root command
const MsgRootLong = `mvi lists the given files and directories (default: the current
directory) as numbered lines in your editor ($VISUAL, $EDITOR, then vi).

Edit a path to rename or move that file, replace it with "delete" (or rm,
remove, del, unlink) to delete it, and leave or remove a line to keep the
file as it is. On save mvi checks the edit, orders the renames so no file is
overwritten before it has been moved away, asks before deleting anything or
replacing an existing file, and removes directories left empty.`
