package github

const searchReposQuery = `
query SearchRepos($query: String!, $first: Int!) {
  search(query: $query, type: REPOSITORY, first: $first) {
    nodes {
      ... on Repository {
        __typename
        id
        name
        description
        updatedAt
        isPrivate
        owner {
          login
        }
      }
    }
  }
}`

const searchPRsQuery = `
query SearchPRs($query: String!, $first: Int!) {
  search(query: $query, type: ISSUE, first: $first) {
    nodes {
      ... on PullRequest {
        __typename
        id
        title
        number
        updatedAt
      }
    }
  }
}`

const updatePRTitleMutation = `
mutation UpdatePullRequest($prId: ID!, $title: String!) {
  updatePullRequest(input: { pullRequestId: $prId, title: $title }) {
    pullRequest {
      id
      title
    }
  }
}`

type repoNode struct {
	Typename    string  `json:"__typename"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	UpdatedAt   string  `json:"updatedAt"`
	IsPrivate   bool    `json:"isPrivate"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type prNode struct {
	Typename  string `json:"__typename"`
	ID        string `json:"id"`
	Title     string `json:"title"`
	Number    int    `json:"number"`
	UpdatedAt string `json:"updatedAt"`
}

type searchResult[N any] struct {
	Search struct {
		Nodes []*N `json:"nodes"`
	} `json:"search"`
}
