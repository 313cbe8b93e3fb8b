package auth

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// SRP-6a as the server implements it: a fixed 1024-bit group, SHA-1 for the
// key derivation, and SHA-1 or SHA-256 for the client proof depending on
// the plugin variant. Public values travel hex-encoded.

const srpKeySize = 128

var (
	srpPrime     *big.Int
	srpGenerator = big.NewInt(2)
	srpK         *big.Int
)

func init() {
	srpPrime, _ = new(big.Int).SetString(
		"E67D2E994B2F900C3F41F08F5BB2627ED0D49EE1FE767A52EFCD565C"+
			"D6E768812C3E1E9CE8F0A8BEA6CB13CD29DDEBF7A96D4A93B55D488D"+
			"F099A15C89DCB0640738EB2CBDD9A8F7BAB561AB1B0DC1C6CDABF303"+
			"264A08D1BCA932D1F1EE428B619D970F342ABA9A65793B8B2F041AE5"+
			"364350C16F735F56ECBCA87BD57B29E7", 16)
	srpK = srpHashInts(srpPrime, srpGenerator)

	Register("Srp", func(user, password string) Client {
		return newSrpClient("Srp", user, password)
	})
	Register("Srp256", func(user, password string) Client {
		return newSrpClient("Srp256", user, password)
	})
}

type srpClient struct {
	plugin   string
	user     string
	password string

	private *big.Int
	public  *big.Int
	key     []byte
}

func newSrpClient(plugin, user, password string) *srpClient {
	priv := randomScalar()
	return &srpClient{
		plugin:   plugin,
		user:     strings.ToUpper(user),
		password: password,
		private:  priv,
		public:   new(big.Int).Exp(srpGenerator, priv, srpPrime),
	}
}

func (c *srpClient) PluginName() string { return c.plugin }

// InitialData is the client public key, hex-encoded, sent with the connect
// request so a cooperative server can answer with its challenge in the
// accept packet and save a round trip.
func (c *srpClient) InitialData() ([]byte, error) {
	return []byte(hex.EncodeToString(srpPad(c.public))), nil
}

// Respond parses the server challenge (salt and server public key), derives
// the session key, and returns the hex-encoded client proof.
func (c *srpClient) Respond(serverData []byte) ([]byte, error) {
	salt, serverPublic, err := parseSrpChallenge(serverData)
	if err != nil {
		return nil, err
	}
	if new(big.Int).Mod(serverPublic, srpPrime).Sign() == 0 {
		return nil, fmt.Errorf("srp: server public key is zero mod N")
	}

	u := srpHashInts(c.public, serverPublic)
	x := c.userHash(salt)
	gx := new(big.Int).Exp(srpGenerator, x, srpPrime)
	kgx := new(big.Int).Mod(new(big.Int).Mul(srpK, gx), srpPrime)
	diff := new(big.Int).Mod(new(big.Int).Sub(serverPublic, kgx), srpPrime)
	exp := new(big.Int).Add(c.private, new(big.Int).Mul(u, x))
	secret := new(big.Int).Exp(diff, exp, srpPrime)

	keySum := sha1.Sum(srpPad(secret))
	c.key = keySum[:]

	proof := c.proof(salt, serverPublic)
	return []byte(hex.EncodeToString(proof)), nil
}

func (c *srpClient) SessionKey() []byte { return c.key }

// userHash is x = H(salt | H(user ":" password)).
func (c *srpClient) userHash(salt []byte) *big.Int {
	inner := sha1.New()
	inner.Write([]byte(c.user))
	inner.Write([]byte(":"))
	inner.Write([]byte(c.password))
	outer := sha1.New()
	outer.Write(salt)
	outer.Write(inner.Sum(nil))
	return new(big.Int).SetBytes(outer.Sum(nil))
}

// proof is M = H(H(N) xor H(g), H(user), salt, A, B, K), where the server
// folds the two group hashes with modular exponentiation rather than xor.
// The hash is SHA-1 for Srp and SHA-256 for Srp256.
func (c *srpClient) proof(salt []byte, serverPublic *big.Int) []byte {
	n1 := new(big.Int).SetBytes(srpHashBytes(srpPad(srpPrime)))
	n2 := new(big.Int).SetBytes(srpHashBytes(srpPad(srpGenerator)))
	n1 = new(big.Int).Exp(n1, n2, srpPrime)
	userDigest := srpHashBytes([]byte(c.user))

	parts := [][]byte{
		n1.Bytes(),
		userDigest,
		salt,
		c.public.Bytes(),
		serverPublic.Bytes(),
		c.key,
	}
	if c.plugin == "Srp256" {
		h := sha256.New()
		for _, p := range parts {
			h.Write(p)
		}
		return h.Sum(nil)
	}
	h := sha1.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// parseSrpChallenge splits the server payload: a little-endian 16-bit salt
// length, the salt, a 16-bit length, then the hex-encoded server public key.
func parseSrpChallenge(data []byte) (salt []byte, serverPublic *big.Int, err error) {
	if len(data) < 4 {
		return nil, nil, fmt.Errorf("srp: challenge too short (%d bytes)", len(data))
	}
	saltLen := int(data[0]) | int(data[1])<<8
	if 2+saltLen+2 > len(data) {
		return nil, nil, fmt.Errorf("srp: salt length %d exceeds challenge", saltLen)
	}
	salt = data[2 : 2+saltLen]
	rest := data[2+saltLen:]
	keyLen := int(rest[0]) | int(rest[1])<<8
	if 2+keyLen > len(rest) {
		return nil, nil, fmt.Errorf("srp: key length %d exceeds challenge", keyLen)
	}
	serverPublic, ok := new(big.Int).SetString(string(rest[2:2+keyLen]), 16)
	if !ok {
		return nil, nil, fmt.Errorf("srp: server public key is not hex")
	}
	return salt, serverPublic, nil
}

func randomScalar() *big.Int {
	buf := make([]byte, srpKeySize)
	if _, err := rand.Read(buf); err != nil {
		panic("auth: crypto/rand failed: " + err.Error())
	}
	return new(big.Int).Mod(new(big.Int).SetBytes(buf), srpPrime)
}

// srpPad left-pads a group element to the group size, as the hash inputs
// require fixed-width encodings.
func srpPad(v *big.Int) []byte {
	b := v.Bytes()
	if len(b) >= srpKeySize {
		return b
	}
	out := make([]byte, srpKeySize)
	copy(out[srpKeySize-len(b):], b)
	return out
}

func srpHashBytes(parts ...[]byte) []byte {
	h := sha1.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

func srpHashInts(vals ...*big.Int) *big.Int {
	h := sha1.New()
	for _, v := range vals {
		h.Write(srpPad(v))
	}
	return new(big.Int).SetBytes(h.Sum(nil))
}
