// Package shell is the pure half of the command engine.
//
// Loosely following the POSIX shell command language processing steps
// (https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html),
// heavily reduced for this interpreter:
//
//  1. The interactive loop reads one line of input.
//
//  2. Tokenize breaks the line into words on whitespace. There are no
//     quoting or escaping rules; operators are only significant as
//     standalone words.
//
//  3. Classify partitions the words into a Plan: the program and its
//     arguments, redirection targets, an optional second pipeline stage,
//     and the background flag. Redirection operators and their operands
//     are removed from the argument vector.
//
//  4. The orchestrator (core/proc) realizes the Plan with real processes,
//     optionally waiting for completion and collecting exit status.
//
// Nothing in this package touches OS resources: classification is a pure
// function from tokens to a Plan, so a malformed line is rejected before
// any file is opened or any process is created.
package shell
