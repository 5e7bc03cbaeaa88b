package enum

/*----------- SubmitterEnum -----------*/

type SubmitterEnum string

const (
	SUBMITTER_SHEET    SubmitterEnum = "sheet"
	SUBMITTER_DOCUMENT SubmitterEnum = "document"
)

func (e SubmitterEnum) IsValid() bool {
	switch e {
	case SUBMITTER_SHEET, SUBMITTER_DOCUMENT:
		return true
	}
	return false
}

/*----------- BrokerEnum -----------*/

type BrokerEnum string

const (
	BROKER_RABBITMQ BrokerEnum = "rabbitmq"
	BROKER_KAFKA    BrokerEnum = "kafka"
	BROKER_NONE     BrokerEnum = "none"
)

func (e BrokerEnum) IsValid() bool {
	switch e {
	case BROKER_RABBITMQ, BROKER_KAFKA, BROKER_NONE:
		return true
	}
	return false
}

/*----------- StorageEnum -----------*/

type StorageEnum string

const (
	STORAGE_S3    StorageEnum = "s3"
	STORAGE_REDIS StorageEnum = "redis"
)

func (e StorageEnum) IsValid() bool {
	switch e {
	case STORAGE_S3, STORAGE_REDIS:
		return true
	}
	return false
}
