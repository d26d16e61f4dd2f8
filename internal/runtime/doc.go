// SPDX-License-Identifier: MPL-2.0

// Package runtime provides the shell execution runtime for taskr.
//
// VirtualShell parses and runs task scripts on an embedded POSIX shell
// interpreter (mvdan/sh). Commands that a script invokes are first looked up
// in a shellcmd.Table and only then resolved through PATH.
//
// EnvBuilder produces the environment every hook step of one invocation
// shares, layered from lowest to highest precedence:
//
//  1. Host environment
//  2. Configured dotenv files (env.files)
//  3. INIT_CWD, when not already present
//  4. PATH, with the package bin directory prepended
package runtime
