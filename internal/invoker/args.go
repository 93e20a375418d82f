package invoker

// ToolFlags are the optional switches of the nbl command line:
//
//	nbl [-d] [-v] [-t] [-o destpath] file.nbl
type ToolFlags struct {
	Debug   bool // -d: dump intermediate buffers to the working directory
	Verbose bool // -v: print header details
}

func (f ToolFlags) args() []string {
	var args []string
	if f.Debug {
		args = append(args, "-d")
	}
	if f.Verbose {
		args = append(args, "-v")
	}
	return args
}

// ExtractArgs builds the arguments for extraction mode: -o <outDir> <file>.
func ExtractArgs(flags ToolFlags, outDir, file string) []string {
	return append(flags.args(), "-o", outDir, file)
}

// ListArgs builds the arguments for listing mode: -t <file>.
func ListArgs(flags ToolFlags, file string) []string {
	return append(flags.args(), "-t", file)
}
