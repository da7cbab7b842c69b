package health

import repo "tweet-collector/repositories/twitter"

type Service interface {
	Echo()
}

type Impl struct {
	repository repo.Repository
}
