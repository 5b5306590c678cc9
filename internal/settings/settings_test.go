package settings

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettings_ReadDotenv(t *testing.T) {
	t.Run("success - .env file is read into env variables", func(t *testing.T) {
		// arrange
		testDotEnvFile := ".env.test"
		f, err := os.Create(testDotEnvFile)
		if err != nil {
			t.Error(err)
		}
		lines := []string{
			`#COMMENTED=asdf`,
			`ACCOUNTS_TEST=1234`,
			``,
			`ACCOUNTS_TEST2= 2345 `,
		}
		for _, line := range lines {
			f.Write([]byte(line + "\n"))
		}
		f.Close()
		defer os.Remove(testDotEnvFile)

		// act
		ReadDotenv(testDotEnvFile)

		// assert
		assert.Equal(t, os.Getenv("ACCOUNTS_TEST"), "1234")
		assert.Equal(t, os.Getenv("ACCOUNTS_TEST2"), "2345")
	})
	t.Run("success - value containing '=' is kept whole", func(t *testing.T) {
		// arrange
		testDotEnvFile := ".env.test.dsn"
		dsn := "postgres://u:p@localhost:5432/accounts?sslmode=disable"
		if err := os.WriteFile(
			testDotEnvFile,
			[]byte("ACCOUNTS_TEST_DSN="+dsn+"\n"),
			0o644,
		); err != nil {
			t.Error(err)
		}
		defer os.Remove(testDotEnvFile)

		// act
		ReadDotenv(testDotEnvFile)

		// assert
		assert.Equal(t, dsn, os.Getenv("ACCOUNTS_TEST_DSN"))
	})
	t.Run("success - missing .env file is ignored", func(t *testing.T) {
		// act & assert: must not exit the process
		ReadDotenv(".env.does.not.exist")
	})
}

func TestSettings_SQLiteDbString(t *testing.T) {
	t.Run("success - readonly connection string", func(t *testing.T) {
		// arrange
		as := NewSettings()

		// act
		s := as.SQLiteDbString(true)

		// assert
		assert.Contains(t, s, "mode=ro")
		assert.NotContains(t, s, "_txlock")
	})
	t.Run("success - read-write connection string", func(t *testing.T) {
		// arrange
		as := NewSettings()

		// act
		s := as.SQLiteDbString(false)

		// assert
		assert.Contains(t, s, "mode=rwc")
		assert.Contains(t, s, "_txlock=IMMEDIATE")
	})
}
