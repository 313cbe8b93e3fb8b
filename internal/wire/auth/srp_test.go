package auth

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// srpServer runs the server side of the exchange for tests: it generates a
// challenge for a known verifier and checks the client's proof.
type srpServer struct {
	user, password string
	salt           []byte
	private        *big.Int
	public         *big.Int
	key            []byte
}

func newSrpServer(user, password string) *srpServer {
	s := &srpServer{
		user:     user,
		password: password,
		salt:     []byte("0123456789abcdef0123456789abcdef"),
		private:  big.NewInt(0x1234567890abcdef),
	}
	// v = g^x, B = k*v + g^b
	x := s.userHash()
	v := new(big.Int).Exp(srpGenerator, x, srpPrime)
	gb := new(big.Int).Exp(srpGenerator, s.private, srpPrime)
	kv := new(big.Int).Mod(new(big.Int).Mul(srpK, v), srpPrime)
	s.public = new(big.Int).Mod(new(big.Int).Add(kv, gb), srpPrime)
	return s
}

func (s *srpServer) userHash() *big.Int {
	inner := sha1.Sum([]byte(s.user + ":" + s.password))
	outer := sha1.New()
	outer.Write(s.salt)
	outer.Write(inner[:])
	return new(big.Int).SetBytes(outer.Sum(nil))
}

// challenge encodes the server payload the way it travels in accept data:
// a 16-bit salt length, the salt, a 16-bit length, the hex public key.
func (s *srpServer) challenge() []byte {
	keyHex := []byte(hex.EncodeToString(s.public.Bytes()))
	out := make([]byte, 0, 4+len(s.salt)+len(keyHex))
	out = append(out, byte(len(s.salt)), byte(len(s.salt)>>8))
	out = append(out, s.salt...)
	out = append(out, byte(len(keyHex)), byte(len(keyHex)>>8))
	out = append(out, keyHex...)
	return out
}

// deriveKey computes the server's session key from the client public key.
func (s *srpServer) deriveKey(clientPublicHex []byte) {
	a, _ := new(big.Int).SetString(string(clientPublicHex), 16)
	u := srpHashInts(a, s.public)
	x := s.userHash()
	v := new(big.Int).Exp(srpGenerator, x, srpPrime)
	// S = (A * v^u)^b
	vu := new(big.Int).Exp(v, u, srpPrime)
	base := new(big.Int).Mod(new(big.Int).Mul(a, vu), srpPrime)
	secret := new(big.Int).Exp(base, s.private, srpPrime)
	sum := sha1.Sum(srpPad(secret))
	s.key = sum[:]
}

// expectedProof recomputes the proof the client must present.
func (s *srpServer) expectedProof(plugin string, clientPublicHex []byte) []byte {
	a, _ := new(big.Int).SetString(string(clientPublicHex), 16)
	n1 := new(big.Int).SetBytes(srpHashBytes(srpPad(srpPrime)))
	n2 := new(big.Int).SetBytes(srpHashBytes(srpPad(srpGenerator)))
	n1 = new(big.Int).Exp(n1, n2, srpPrime)
	parts := [][]byte{
		n1.Bytes(),
		srpHashBytes([]byte(s.user)),
		s.salt,
		a.Bytes(),
		s.public.Bytes(),
		s.key,
	}
	if plugin == "Srp256" {
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

func TestSrpExchange(t *testing.T) {
	for _, plugin := range []string{"Srp", "Srp256"} {
		t.Run(plugin, func(t *testing.T) {
			factory, ok := Lookup(plugin)
			require.True(t, ok)
			client := factory("sysdba", "masterkey")
			assert.Equal(t, plugin, client.PluginName())
			assert.Nil(t, client.SessionKey())

			// The server knows the verifier for the uppercased login.
			server := newSrpServer("SYSDBA", "masterkey")

			clientPublic, err := client.InitialData()
			require.NoError(t, err)
			assert.Len(t, clientPublic, 2*srpKeySize)

			proofHex, err := client.Respond(server.challenge())
			require.NoError(t, err)

			server.deriveKey(clientPublic)
			assert.Equal(t, server.key, client.SessionKey(),
				"both sides must derive the same session key")

			proof, err := hex.DecodeString(string(proofHex))
			require.NoError(t, err)
			assert.Equal(t, server.expectedProof(plugin, clientPublic), proof)
		})
	}
}

func TestSrpWrongPasswordDiverges(t *testing.T) {
	factory, _ := Lookup("Srp")
	client := factory("SYSDBA", "wrong")
	server := newSrpServer("SYSDBA", "masterkey")

	clientPublic, err := client.InitialData()
	require.NoError(t, err)
	_, err = client.Respond(server.challenge())
	require.NoError(t, err)

	server.deriveKey(clientPublic)
	assert.NotEqual(t, server.key, client.SessionKey())
}

func TestSrpChallengeParsing(t *testing.T) {
	t.Run("TooShort", func(t *testing.T) {
		_, _, err := parseSrpChallenge([]byte{1, 0})
		assert.Error(t, err)
	})

	t.Run("SaltLengthOverrun", func(t *testing.T) {
		_, _, err := parseSrpChallenge([]byte{0xff, 0x00, 1, 2, 3})
		assert.Error(t, err)
	})

	t.Run("KeyLengthOverrun", func(t *testing.T) {
		_, _, err := parseSrpChallenge([]byte{1, 0, 0xaa, 0xff, 0x00})
		assert.Error(t, err)
	})

	t.Run("NonHexKey", func(t *testing.T) {
		_, _, err := parseSrpChallenge([]byte{1, 0, 0xaa, 2, 0, 'z', 'z'})
		assert.Error(t, err)
	})

	t.Run("ZeroServerKeyRejected", func(t *testing.T) {
		factory, _ := Lookup("Srp")
		client := factory("SYSDBA", "masterkey")
		_, err := client.Respond([]byte{1, 0, 0xaa, 2, 0, '0', '0'})
		assert.Error(t, err)
	})
}

func TestSrpClientUppercasesUser(t *testing.T) {
	c := newSrpClient("Srp", "sysdba", "masterkey")
	assert.Equal(t, "SYSDBA", c.user)
}
