//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/fieldscope --repository.default-branch main --repository.path /

package fieldscope
