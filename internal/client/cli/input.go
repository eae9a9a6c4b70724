package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/dmitrijs2005/profilekeeper/internal/common"
)

// Seams over x/term so tests never touch a real terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

var (
	errEmptyPassword    = errors.New("password must not be empty")
	errPasswordMismatch = errors.New("passwords do not match")
)

// promptPassword asks for the password of the account being registered. On
// a terminal it reads it twice without echo and requires both entries to
// match. Otherwise it takes the first line of in, so scripts can pipe it.
// The caller wipes the result.
func promptPassword(in io.Reader, w io.Writer) ([]byte, error) {
	fd, ok := terminalFd(in)
	if !ok {
		return readPipedPassword(in)
	}

	pw, err := readHidden(fd, w, "Password: ")
	if err != nil {
		return nil, err
	}
	if len(pw) == 0 {
		return nil, errEmptyPassword
	}

	confirm, err := readHidden(fd, w, "Repeat password: ")
	defer common.WipeByteArray(confirm)
	if err != nil {
		common.WipeByteArray(pw)
		return nil, err
	}
	if !bytes.Equal(pw, confirm) {
		common.WipeByteArray(pw)
		return nil, errPasswordMismatch
	}
	return pw, nil
}

func terminalFd(in io.Reader) (int, bool) {
	f, ok := in.(interface{ Fd() uintptr })
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, isTerminal(fd)
}

func readHidden(fd int, w io.Writer, prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	return pw, err
}

func readPipedPassword(in io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(in).ReadBytes('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		common.WipeByteArray(line)
		if errors.Is(err, io.EOF) {
			return nil, errEmptyPassword
		}
		return nil, err
	}
	pw := bytes.TrimRight(line, "\r\n")
	if len(pw) == 0 {
		return nil, errEmptyPassword
	}
	return pw, nil
}
