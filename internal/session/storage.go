package session

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"leavectl/internal/auth"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
	keyFile   = "session.key"
)

// Storage is the durable cache for the current session: one slot for the
// bearer token, one for the serialized user. Reads report absence instead
// of failing and writes are best-effort, mirroring the web client's
// localStorage behavior.
type Storage interface {
	ReadToken() (string, bool)
	WriteToken(token string)
	ClearToken()
	ReadUser() (*auth.User, bool)
	WriteUser(u *auth.User)
	ClearUser()
}

// NewStorage returns a file-backed store rooted at dir, sealed at rest
// when sealed is true. An empty or uncreatable dir yields the no-op store;
// the session then simply does not survive the process.
func NewStorage(dir string, sealed bool) Storage {
	if dir == "" {
		return nopStorage{}
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		slog.Warn("session storage unavailable", "dir", dir, "err", err)
		return nopStorage{}
	}
	fs := &fileStorage{dir: dir}
	if sealed {
		s, err := newSealer(filepath.Join(dir, keyFile))
		if err != nil {
			slog.Warn("session sealing unavailable, storing plaintext", "err", err)
		} else {
			fs.sealer = s
		}
	}
	return fs
}

type fileStorage struct {
	dir    string
	sealer *sealer
}

func (f *fileStorage) ReadToken() (string, bool) {
	blob, ok := f.read(tokenFile)
	if !ok || len(blob) == 0 {
		return "", false
	}
	return string(blob), true
}

func (f *fileStorage) WriteToken(token string) { f.write(tokenFile, []byte(token)) }
func (f *fileStorage) ClearToken()             { f.clear(tokenFile) }

func (f *fileStorage) ReadUser() (*auth.User, bool) {
	blob, ok := f.read(userFile)
	if !ok {
		return nil, false
	}
	var u auth.User
	if err := json.Unmarshal(blob, &u); err != nil {
		slog.Warn("discarding corrupt cached user", "err", err)
		return nil, false
	}
	return &u, true
}

func (f *fileStorage) WriteUser(u *auth.User) {
	blob, err := json.Marshal(u)
	if err != nil {
		slog.Warn("serialize user failed", "err", err)
		return
	}
	f.write(userFile, blob)
}

func (f *fileStorage) ClearUser() { f.clear(userFile) }

func (f *fileStorage) path(name string) string { return filepath.Join(f.dir, name) }

func (f *fileStorage) read(name string) ([]byte, bool) {
	blob, err := os.ReadFile(f.path(name))
	if err != nil {
		return nil, false
	}
	if f.sealer != nil {
		plain, ok := f.sealer.open(blob)
		if !ok {
			slog.Warn("discarding unreadable session file", "file", name)
			return nil, false
		}
		return plain, true
	}
	return blob, true
}

func (f *fileStorage) write(name string, plain []byte) {
	if f.sealer != nil {
		var err error
		plain, err = f.sealer.seal(plain)
		if err != nil {
			slog.Warn("session seal failed", "file", name, "err", err)
			return
		}
	}
	if err := os.WriteFile(f.path(name), plain, 0o600); err != nil {
		slog.Warn("session write failed", "file", name, "err", err)
	}
}

func (f *fileStorage) clear(name string) {
	if err := os.Remove(f.path(name)); err != nil && !os.IsNotExist(err) {
		slog.Warn("session clear failed", "file", name, "err", err)
	}
}

// nopStorage is the capability fallback for contexts with no durable
// storage.
type nopStorage struct{}

func (nopStorage) ReadToken() (string, bool)    { return "", false }
func (nopStorage) WriteToken(string)            {}
func (nopStorage) ClearToken()                  {}
func (nopStorage) ReadUser() (*auth.User, bool) { return nil, false }
func (nopStorage) WriteUser(*auth.User)         {}
func (nopStorage) ClearUser()                   {}
