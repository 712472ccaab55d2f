// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package credential_test

import (
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/holomush/credcheck/internal/credential"
)

// messageOf returns the rejection message of err, or "" for nil.
func messageOf(err error) string {
	if err == nil {
		return ""
	}
	fe, ok := credential.AsFieldError(err)
	Expect(ok).To(BeTrue(), "expected a field rejection, got %v", err)
	return fe.Message
}

var _ = Describe("Credential validation properties", func() {
	Describe("names", func() {
		DescribeTable("blank after trimming is rejected",
			func(s string) {
				Expect(messageOf(credential.ValidateName(s))).To(Equal(credential.MsgNameRequired))
			},
			Entry("empty", ""),
			Entry("space", " "),
			Entry("many spaces", strings.Repeat(" ", 64)),
			Entry("mixed whitespace", " \t\r\n\v\f"),
			Entry("no-break spaces", "\u00a0\u00a0"),
		)

		DescribeTable("anything with a visible character is accepted",
			func(s string) {
				Expect(credential.ValidateName(s)).To(Succeed())
			},
			Entry("letter", "a"),
			Entry("digit", "7"),
			Entry("padded", "  x  "),
			Entry("unicode", "José María"),
			Entry("emoji", "🙂"),
		)
	})

	Describe("passwords", func() {
		It("reports the length message for every input under eight characters", func() {
			alphabet := []string{"a", "A", "1", "!", "é", " "}
			for n := 0; n < credential.MinPasswordLength; n++ {
				for _, ch := range alphabet {
					s := strings.Repeat(ch, n)
					Expect(messageOf(credential.ValidatePassword(s))).To(
						Equal(credential.MsgPasswordTooShort), "input %q", s)
				}
				mixed := strings.Repeat("A1!", 3)[:n]
				Expect(messageOf(credential.ValidatePassword(mixed))).To(
					Equal(credential.MsgPasswordTooShort), "input %q", mixed)
			}
		})

		DescribeTable("long inputs missing a character class get the composition message",
			func(s string) {
				Expect(messageOf(credential.ValidatePassword(s))).To(Equal(credential.MsgPasswordComposition))
			},
			Entry("no digit", "Password!!"),
			Entry("no symbol", "Password12"),
			Entry("no uppercase", "password1!"),
			Entry("only lowercase", "passwordpassword"),
			Entry("only digits", "1234567890"),
			Entry("only symbols", "!@#$%^&*()"),
		)

		It("accepts Password123!", func() {
			Expect(credential.ValidatePassword("Password123!")).To(Succeed())
		})
	})

	Describe("emails", func() {
		It("rejects any string without an @", func() {
			for _, s := range []string{"", "plain", "user.example.com", "user at example.com"} {
				Expect(messageOf(credential.ValidateEmail(s))).To(Equal(credential.MsgInvalidEmail))
			}
		})

		It("rejects an empty local part or domain", func() {
			for _, s := range []string{"@example.com", "user@", "user@.com", "user@com"} {
				Expect(messageOf(credential.ValidateEmail(s))).To(Equal(credential.MsgInvalidEmail), s)
			}
		})

		It("accepts tagged addresses", func() {
			Expect(credential.ValidateEmail("user+tag@example.org")).To(Succeed())
		})
	})

	Describe("records", func() {
		It("surfaces the first offending field in declaration order", func() {
			_, err := credential.ValidateRecord(credential.Candidate{
				Name:     credential.StringPtr(""),
				Email:    "",
				Password: "",
			}, credential.SignUp)
			Expect(messageOf(err)).To(Equal(credential.MsgNameRequired))
		})

		It("never carries a name in sign-in output", func() {
			for _, name := range []*string{nil, credential.StringPtr(""), credential.StringPtr("Someone")} {
				rec, err := credential.ValidateRecord(credential.Candidate{
					Name:     name,
					Email:    "a@b.com",
					Password: "Password123!",
				}, credential.SignIn)
				Expect(err).NotTo(HaveOccurred())
				Expect(rec.Fields()).NotTo(HaveKey("name"))
			}
		})
	})

	Describe("purity", func() {
		It("returns identical verdicts on repeated calls", func() {
			inputs := []string{"", " ", "Ab1!", "password123", "Password123!", "a@b.com", "test@"}
			for _, s := range inputs {
				for _, f := range credential.Fields {
					Expect(credential.Message(f, s)).To(Equal(credential.Message(f, s)))
				}
			}
		})

		It("returns identical verdicts under concurrent use", func() {
			const workers = 16
			results := make([]string, workers)
			var wg sync.WaitGroup
			for i := range workers {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i] = credential.Message(credential.FieldPassword, "password123")
				}(i)
			}
			wg.Wait()
			for _, r := range results {
				Expect(r).To(Equal(credential.MsgPasswordComposition))
			}
		})
	})
})
