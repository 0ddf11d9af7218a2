package filesystem

import (
	"fmt"
)

// OpenSource creates the Source for a root argument.
// Returns (source, rootPath, closer, error).
// - source: The Source to walk and read files from
// - rootPath: The path to walk on that source (stripped of the URL prefix)
// - closer: A function to call when done (closes SFTP connections), never nil,
// also on error
func OpenSource(arg string, opts ConnectOptions) (Source, string, func(), error) {
	noop := func() {}

	root, err := ParseRoot(arg)
	if err != nil {
		return nil, "", noop, err
	}

	if !root.Remote {
		return NewLocalSource(), root.Path, noop, nil
	}

	opts.Host = root.Host
	opts.Port = root.Port
	opts.User = root.User

	conn, err := Connect(opts)
	if err != nil {
		return nil, "", noop, fmt.Errorf("failed to connect to %s@%s:%d: %w",
			root.User, root.Host, root.Port, err)
	}

	closer := func() {
		_ = conn.Close()
	}

	return NewSFTPSource(conn.Client()), root.Path, closer, nil
}
