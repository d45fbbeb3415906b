package common

import (
	"fmt"
	"math/rand"
	"os"
	"sync"

	"github.com/bwmarrin/snowflake"
	"golang.org/x/crypto/bcrypt"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var (
	snowflakeNode *snowflake.Node
	nodeOnce      sync.Once
)

func node() *snowflake.Node {
	nodeOnce.Do(func() {
		var err error
		snowflakeNode, err = snowflake.NewNode(int64(os.Getpid() % 1024))
		if err != nil {
			panic(err)
		}
	})
	return snowflakeNode
}

// UUIDint64 returns a new snowflake ID.
func UUIDint64() int64 {
	return node().Generate().Int64()
}

// ChainHashToken returns an opaque hex token in the "0x..." form used by
// the transaction chain_hash column. It is a random identifier, not a
// content digest, and is never verified.
func ChainHashToken() string {
	return fmt.Sprintf("0x%016x%016x", rand.Uint64(), rand.Uint64())
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches the stored hash.
func CheckPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
