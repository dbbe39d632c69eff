package fetch

import "testing"

func TestInjectAccessToken(t *testing.T) {
	testCases := []struct {
		name          string
		repositoryURL string
		accessToken   string
		expected      string
	}{
		{
			name:          "HTTPSGetsToken",
			repositoryURL: "https://github.com/example/project.git",
			accessToken:   "secret",
			expected:      "https://secret@github.com/example/project.git",
		},
		{
			name:          "SSHUnchanged",
			repositoryURL: "ssh://git@github.com/example/project.git",
			accessToken:   "secret",
			expected:      "ssh://git@github.com/example/project.git",
		},
		{
			name:          "UnparseableUnchanged",
			repositoryURL: "https://exa mple.com/%zz",
			accessToken:   "secret",
			expected:      "https://exa mple.com/%zz",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := injectAccessToken(testCase.repositoryURL, testCase.accessToken)
			if actual != testCase.expected {
				t.Errorf("injectAccessToken(%q) = %q, expected %q", testCase.repositoryURL, actual, testCase.expected)
			}
		})
	}
}
